package attackpath

import "context"

// Repository defines the interface for attack path data access
type Repository interface {
	// Create appends an attack path
	Create(ctx context.Context, p *AttackPath) (int64, error)

	// GetByID retrieves an attack path by ID
	GetByID(ctx context.Context, id int64) (*AttackPath, error)

	// List retrieves attack paths, newest first
	List(ctx context.Context, limit int) ([]*AttackPath, error)
}
