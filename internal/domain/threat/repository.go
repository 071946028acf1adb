package threat

import (
	"context"
	"time"
)

// Repository defines the interface for threat data access
type Repository interface {
	// Create creates a new threat
	Create(ctx context.Context, t *Threat) (int64, error)

	// GetByID retrieves a threat by numeric ID
	GetByID(ctx context.Context, id int64) (*Threat, error)

	// Update persists the given threat
	Update(ctx context.Context, t *Threat) error

	// List retrieves threats with filters and pagination, newest first
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Threat, int64, error)

	// CountActiveBySeverity counts active threats grouped by severity
	CountActiveBySeverity(ctx context.Context) (map[string]int, error)

	// DeleteInactiveBefore removes mitigated threats detected before cutoff.
	// Used by the retention sweeper only.
	DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
