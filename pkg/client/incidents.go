package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// IncidentService handles incident-related API calls
type IncidentService struct {
	client *Client
}

// CreateIncidentRequest represents a request to create an incident
type CreateIncidentRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Severity    string  `json:"severity"`
	Type        string  `json:"type"`
	RiskScore   float64 `json:"riskScore,omitempty"`
	Metadata    string  `json:"metadata,omitempty"`
}

// PatchIncidentRequest represents a partial incident update. Nil fields
// are left unchanged.
type PatchIncidentRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Severity    *string  `json:"severity,omitempty"`
	Status      *string  `json:"status,omitempty"`
	AssigneeID  *int64   `json:"assigneeId,omitempty"`
	RiskScore   *float64 `json:"riskScore,omitempty"`
}

// IncidentListOptions contains options for listing incidents
type IncidentListOptions struct {
	ListOptions
	Severity string
	Status   string
	Type     string
}

// List retrieves incidents, newest first
func (s *IncidentService) List(ctx context.Context, opts *IncidentListOptions) ([]Incident, *Page, error) {
	query := url.Values{}

	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.Severity != "" {
			query.Set("severity", opts.Severity)
		}
		if opts.Status != "" {
			query.Set("status", opts.Status)
		}
		if opts.Type != "" {
			query.Set("type", opts.Type)
		}
	}

	path := "/api/incidents"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var pg paginated
	if err := s.client.doRequest(ctx, "GET", path, nil, &pg); err != nil {
		return nil, nil, err
	}

	var incidents []Incident
	if len(pg.Data) > 0 {
		if err := json.Unmarshal(pg.Data, &incidents); err != nil {
			return nil, nil, fmt.Errorf("failed to parse incident list: %w", err)
		}
	}

	page := pg.Page
	return incidents, &page, nil
}

// Get retrieves a single incident by ID
func (s *IncidentService) Get(ctx context.Context, id int64) (*Incident, error) {
	path := fmt.Sprintf("/api/incidents/%d", id)

	var incident Incident
	if err := s.client.doRequest(ctx, "GET", path, nil, &incident); err != nil {
		return nil, err
	}

	return &incident, nil
}

// Create creates a new incident. The server assigns the incident code.
func (s *IncidentService) Create(ctx context.Context, req CreateIncidentRequest) (*Incident, error) {
	var incident Incident
	if err := s.client.doRequest(ctx, "POST", "/api/incidents", req, &incident); err != nil {
		return nil, err
	}

	return &incident, nil
}

// Patch applies a partial update to an incident
func (s *IncidentService) Patch(ctx context.Context, id int64, req PatchIncidentRequest) (*Incident, error) {
	path := fmt.Sprintf("/api/incidents/%d", id)

	var incident Incident
	if err := s.client.doRequest(ctx, "PATCH", path, req, &incident); err != nil {
		return nil, err
	}

	return &incident, nil
}

// Resolve is a convenience wrapper that patches the incident status to
// resolved.
func (s *IncidentService) Resolve(ctx context.Context, id int64) (*Incident, error) {
	status := "resolved"
	return s.Patch(ctx, id, PatchIncidentRequest{Status: &status})
}
