package insight

import "context"

// Service defines the interface for AI insight business logic
type Service interface {
	// Create appends an insight, optionally narrating the description
	Create(ctx context.Context, ins *Insight) (int64, error)

	// ListActive retrieves active insights
	ListActive(ctx context.Context, limit int) ([]*Insight, error)

	// Dismiss marks an insight inactive
	Dismiss(ctx context.Context, id int64) error
}
