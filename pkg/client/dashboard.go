package client

import "context"

// DashboardService handles dashboard aggregate API calls
type DashboardService struct {
	client *Client
}

// Metrics retrieves the headline dashboard counters
func (s *DashboardService) Metrics(ctx context.Context) (*DashboardMetrics, error) {
	var metrics DashboardMetrics
	if err := s.client.doRequest(ctx, "GET", "/api/dashboard/metrics", nil, &metrics); err != nil {
		return nil, err
	}
	return &metrics, nil
}
