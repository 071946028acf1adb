package client

import "context"

// FLService handles federated learning coordinator API calls
type FLService struct {
	client *Client
}

// Status retrieves the coordinator status and round counters
func (s *FLService) Status(ctx context.Context) (*FLStatus, error) {
	var status FLStatus
	if err := s.client.doRequest(ctx, "GET", "/api/fl/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Nodes retrieves the participating node set
func (s *FLService) Nodes(ctx context.Context) ([]FLNode, error) {
	var nodes []FLNode
	if err := s.client.doRequest(ctx, "GET", "/api/fl/nodes", nil, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// Performance retrieves per-node accuracy and the aggregate model accuracy
func (s *FLService) Performance(ctx context.Context) (*FLPerformance, error) {
	var perf FLPerformance
	if err := s.client.doRequest(ctx, "GET", "/api/fl/performance", nil, &perf); err != nil {
		return nil, err
	}
	return &perf, nil
}

// Start resumes training
func (s *FLService) Start(ctx context.Context) (*FLStatus, error) {
	var status FLStatus
	if err := s.client.doRequest(ctx, "POST", "/api/fl/start", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Pause suspends training while keeping accumulated model state
func (s *FLService) Pause(ctx context.Context) (*FLStatus, error) {
	var status FLStatus
	if err := s.client.doRequest(ctx, "POST", "/api/fl/pause", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Reset restores the initial coordinator state
func (s *FLService) Reset(ctx context.Context) (*FLStatus, error) {
	var status FLStatus
	if err := s.client.doRequest(ctx, "POST", "/api/fl/reset", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
