package incident

import "context"

// Service defines the interface for incident business logic
type Service interface {
	// Create creates a new incident; assigns an incident code when empty
	Create(ctx context.Context, inc *Incident) (int64, error)

	// GetByID retrieves an incident by ID
	GetByID(ctx context.Context, id int64) (*Incident, error)

	// Patch applies a partial update. Applying the same patch twice
	// yields the same stored state.
	Patch(ctx context.Context, id int64, patch Patch) (*Incident, error)

	// Acknowledge moves an open incident to investigating
	Acknowledge(ctx context.Context, id int64) error

	// List retrieves incidents with filters and pagination
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Incident, int64, error)

	// GetSummary returns incident counts by severity
	GetSummary(ctx context.Context) (map[string]int, error)
}
