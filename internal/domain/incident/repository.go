package incident

import "context"

// Repository defines the interface for incident data access
type Repository interface {
	// Create creates a new incident
	Create(ctx context.Context, inc *Incident) (int64, error)

	// GetByID retrieves an incident by numeric ID
	GetByID(ctx context.Context, id int64) (*Incident, error)

	// Update persists the given incident
	Update(ctx context.Context, inc *Incident) error

	// List retrieves incidents with filters and pagination, newest first
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Incident, int64, error)

	// CountBySeverity counts incidents grouped by severity
	CountBySeverity(ctx context.Context) (map[string]int, error)
}
