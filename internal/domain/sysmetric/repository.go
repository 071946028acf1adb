package sysmetric

import (
	"context"
	"time"
)

// Repository defines the interface for system metric data access
type Repository interface {
	// Create appends a metric sample
	Create(ctx context.Context, m *Metric) (int64, error)

	// Latest returns the most recent sample per metric type and component
	Latest(ctx context.Context) ([]*Metric, error)

	// History returns samples of the given type since the cutoff, oldest first
	History(ctx context.Context, metricType string, since time.Time) ([]*Metric, error)

	// DeleteBefore removes samples older than cutoff. Retention sweeper only.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
