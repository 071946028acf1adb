package client

import (
	"context"
	"fmt"
	"strconv"
)

// InsightService handles AI insight API calls
type InsightService struct {
	client *Client
}

// List retrieves active insights, newest first. A limit of 0 uses the
// server default.
func (s *InsightService) List(ctx context.Context, limit int) ([]Insight, error) {
	path := "/api/ai/insights"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var insights []Insight
	if err := s.client.doRequest(ctx, "GET", path, nil, &insights); err != nil {
		return nil, err
	}
	return insights, nil
}

// Dismiss deactivates an insight so it no longer appears in active lists
func (s *InsightService) Dismiss(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/ai/insights/%d/dismiss", id)
	return s.client.doRequest(ctx, "POST", path, nil, nil)
}
