package client

import (
	"context"
	"net/url"
	"time"
)

// SystemService handles system telemetry API calls
type SystemService struct {
	client *Client
}

// Metrics retrieves the latest metric sample per type and component
func (s *SystemService) Metrics(ctx context.Context) ([]SystemMetric, error) {
	var samples []SystemMetric
	if err := s.client.doRequest(ctx, "GET", "/api/system/metrics", nil, &samples); err != nil {
		return nil, err
	}
	return samples, nil
}

// History retrieves samples of one metric type over a trailing window,
// oldest first
func (s *SystemService) History(ctx context.Context, metricType string, window time.Duration) ([]SystemMetric, error) {
	query := url.Values{}
	query.Set("type", metricType)
	if window > 0 {
		query.Set("window", window.String())
	}

	var samples []SystemMetric
	if err := s.client.doRequest(ctx, "GET", "/api/system/metrics?"+query.Encode(), nil, &samples); err != nil {
		return nil, err
	}
	return samples, nil
}

// Health retrieves simulated platform component health
func (s *SystemService) Health(ctx context.Context) (*SystemHealth, error) {
	var health SystemHealth
	if err := s.client.doRequest(ctx, "GET", "/api/system/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
