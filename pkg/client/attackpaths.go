package client

import (
	"context"
	"fmt"
	"strconv"
)

// AttackPathService handles attack path API calls
type AttackPathService struct {
	client *Client
}

// List retrieves attack paths, newest first. A limit of 0 uses the
// server default.
func (s *AttackPathService) List(ctx context.Context, limit int) ([]AttackPath, error) {
	path := "/api/attack-paths"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var paths []AttackPath
	if err := s.client.doRequest(ctx, "GET", path, nil, &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

// Get retrieves a single attack path by ID
func (s *AttackPathService) Get(ctx context.Context, id int64) (*AttackPath, error) {
	path := fmt.Sprintf("/api/attack-paths/%d", id)

	var ap AttackPath
	if err := s.client.doRequest(ctx, "GET", path, nil, &ap); err != nil {
		return nil, err
	}
	return &ap, nil
}
