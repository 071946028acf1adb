// Package client is a typed Go client for the AgisFL REST API. It is
// used by the agisfl CLI and usable standalone.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Config controls client construction. Only BaseURL is required.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

func NewClient(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{baseURL: cfg.BaseURL, httpClient: hc}
}

// SetToken stores the JWT sent as a bearer token on later requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) GetToken() string {
	return c.token
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   *errorDetail    `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		buf = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// doRequest executes the request and unwraps the response envelope into
// result. Non-2xx responses come back as *APIError.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(raw))
		}
		return fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			apiErr.Details = env.Error.Details
		}
		return apiErr
	}

	if result != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("decoding response data: %w", err)
		}
	}
	return nil
}

// Incidents returns the incident management service.
func (c *Client) Incidents() *IncidentService {
	return &IncidentService{client: c}
}

// Threats returns the threat management service.
func (c *Client) Threats() *ThreatService {
	return &ThreatService{client: c}
}

// System returns the system telemetry service.
func (c *Client) System() *SystemService {
	return &SystemService{client: c}
}

// Insights returns the AI insight service.
func (c *Client) Insights() *InsightService {
	return &InsightService{client: c}
}

// AttackPaths returns the attack path service.
func (c *Client) AttackPaths() *AttackPathService {
	return &AttackPathService{client: c}
}

// Dashboard returns the dashboard aggregate service.
func (c *Client) Dashboard() *DashboardService {
	return &DashboardService{client: c}
}

// FL returns the federated learning coordinator service.
func (c *Client) FL() *FLService {
	return &FLService{client: c}
}
