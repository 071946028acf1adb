package threat

import "context"

// Service defines the interface for threat business logic
type Service interface {
	// Create creates a new threat; assigns a THR- code when empty
	Create(ctx context.Context, t *Threat) (int64, error)

	// GetByID retrieves a threat by ID
	GetByID(ctx context.Context, id int64) (*Threat, error)

	// Mitigate marks a threat as mitigated (inactive)
	Mitigate(ctx context.Context, id int64) (*Threat, error)

	// List retrieves threats with filters and pagination
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Threat, int64, error)

	// GetSummary returns active threat counts by severity
	GetSummary(ctx context.Context) (map[string]int, error)
}
