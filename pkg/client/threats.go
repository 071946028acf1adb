package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// ThreatService handles threat-related API calls
type ThreatService struct {
	client *Client
}

// CreateThreatRequest represents a request to record a threat
type CreateThreatRequest struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Severity    string  `json:"severity"`
	Description string  `json:"description,omitempty"`
	SourceIP    string  `json:"sourceIp,omitempty"`
	TargetIP    string  `json:"targetIp,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
	Metadata    string  `json:"metadata,omitempty"`
}

// ThreatListOptions contains options for listing threats
type ThreatListOptions struct {
	ListOptions
	Type       string
	Severity   string
	ActiveOnly bool
}

// List retrieves threats, newest first
func (s *ThreatService) List(ctx context.Context, opts *ThreatListOptions) ([]Threat, *Page, error) {
	query := url.Values{}

	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.Type != "" {
			query.Set("type", opts.Type)
		}
		if opts.Severity != "" {
			query.Set("severity", opts.Severity)
		}
		if opts.ActiveOnly {
			query.Set("active", "true")
		}
	}

	path := "/api/threats"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var pg paginated
	if err := s.client.doRequest(ctx, "GET", path, nil, &pg); err != nil {
		return nil, nil, err
	}

	var threats []Threat
	if len(pg.Data) > 0 {
		if err := json.Unmarshal(pg.Data, &threats); err != nil {
			return nil, nil, fmt.Errorf("failed to parse threat list: %w", err)
		}
	}

	page := pg.Page
	return threats, &page, nil
}

// Get retrieves a single threat by ID
func (s *ThreatService) Get(ctx context.Context, id int64) (*Threat, error) {
	path := fmt.Sprintf("/api/threats/%d", id)

	var threat Threat
	if err := s.client.doRequest(ctx, "GET", path, nil, &threat); err != nil {
		return nil, err
	}

	return &threat, nil
}

// Create records a new threat. The server assigns the threat code.
func (s *ThreatService) Create(ctx context.Context, req CreateThreatRequest) (*Threat, error) {
	var threat Threat
	if err := s.client.doRequest(ctx, "POST", "/api/threats", req, &threat); err != nil {
		return nil, err
	}

	return &threat, nil
}

// Mitigate marks a threat as mitigated. Mitigating an already mitigated
// threat is a no-op.
func (s *ThreatService) Mitigate(ctx context.Context, id int64) (*Threat, error) {
	path := fmt.Sprintf("/api/threats/%d/mitigate", id)

	var threat Threat
	if err := s.client.doRequest(ctx, "POST", path, nil, &threat); err != nil {
		return nil, err
	}

	return &threat, nil
}
