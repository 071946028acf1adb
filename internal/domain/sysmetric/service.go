package sysmetric

import (
	"context"
	"time"
)

// Service defines the interface for system metric business logic
type Service interface {
	// Record appends a metric sample, deriving the status label
	Record(ctx context.Context, m *Metric) (int64, error)

	// Latest returns the most recent sample per type and component
	Latest(ctx context.Context) ([]*Metric, error)

	// History returns samples of the given type over the window
	History(ctx context.Context, metricType string, window time.Duration) ([]*Metric, error)
}
