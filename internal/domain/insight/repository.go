package insight

import "context"

// Repository defines the interface for AI insight data access
type Repository interface {
	// Create appends an insight
	Create(ctx context.Context, ins *Insight) (int64, error)

	// ListActive retrieves active insights, newest first
	ListActive(ctx context.Context, limit int) ([]*Insight, error)

	// Deactivate marks an insight inactive
	Deactivate(ctx context.Context, id int64) error
}
