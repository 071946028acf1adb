package client

import "context"

// Health checks the service liveness probe
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.doRequest(ctx, "GET", "/health", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Ready checks the service readiness probe, including storage
// connectivity
func (c *Client) Ready(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.doRequest(ctx, "GET", "/readyz", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
