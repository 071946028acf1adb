package memory

import (
	"context"
	"sync"
	"time"

	"github.com/agisfl/agisfl/internal/domain/incident"
	"github.com/agisfl/agisfl/internal/pkg/errors"
)

// IncidentRepository is an in-memory incident store for demo deployments.
type IncidentRepository struct {
	mu        sync.RWMutex
	incidents map[int64]*incident.Incident
	nextID    int64
}

func NewIncidentRepository() incident.Repository {
	return &IncidentRepository{incidents: make(map[int64]*incident.Incident), nextID: 1}
}

func (r *IncidentRepository) Create(ctx context.Context, inc *incident.Incident) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	inc.ID = r.nextID
	inc.CreatedAt = now
	inc.UpdatedAt = now
	r.nextID++

	cp := *inc
	r.incidents[inc.ID] = &cp
	return inc.ID, nil
}

func (r *IncidentRepository) GetByID(ctx context.Context, id int64) (*incident.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inc, ok := r.incidents[id]
	if !ok {
		return nil, errors.NotFound("Incident")
	}
	cp := *inc
	return &cp, nil
}

func (r *IncidentRepository) Update(ctx context.Context, inc *incident.Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.incidents[inc.ID]; !ok {
		return errors.NotFound("Incident")
	}
	inc.UpdatedAt = time.Now()
	cp := *inc
	r.incidents[inc.ID] = &cp
	return nil
}

func (r *IncidentRepository) List(ctx context.Context, filter incident.Filter, limit, offset int) ([]*incident.Incident, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*incident.Incident, 0, len(r.incidents))
	for _, inc := range r.incidents {
		if filter.Severity != "" && inc.Severity != filter.Severity {
			continue
		}
		if filter.Status != "" && inc.Status != filter.Status {
			continue
		}
		if filter.Type != "" && inc.Type != filter.Type {
			continue
		}
		cp := *inc
		matched = append(matched, &cp)
	}

	sortByIDDesc(matched, func(i *incident.Incident) int64 { return i.ID })
	total := int64(len(matched))
	return paginate(matched, limit, offset), total, nil
}

func (r *IncidentRepository) CountBySeverity(ctx context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, inc := range r.incidents {
		if inc.Status == incident.StatusResolved || inc.Status == incident.StatusClosed {
			continue
		}
		counts[inc.Severity]++
	}
	return counts, nil
}
