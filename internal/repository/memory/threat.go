package memory

import (
	"context"
	"sync"
	"time"

	"github.com/agisfl/agisfl/internal/domain/threat"
	"github.com/agisfl/agisfl/internal/pkg/errors"
)

// ThreatRepository is an in-memory threat store for demo deployments.
type ThreatRepository struct {
	mu      sync.RWMutex
	threats map[int64]*threat.Threat
	nextID  int64
}

func NewThreatRepository() threat.Repository {
	return &ThreatRepository{threats: make(map[int64]*threat.Threat), nextID: 1}
}

func (r *ThreatRepository) Create(ctx context.Context, t *threat.Threat) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextID
	if t.DetectedAt.IsZero() {
		t.DetectedAt = time.Now()
	}
	r.nextID++

	cp := *t
	r.threats[t.ID] = &cp
	return t.ID, nil
}

func (r *ThreatRepository) GetByID(ctx context.Context, id int64) (*threat.Threat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.threats[id]
	if !ok {
		return nil, errors.NotFound("Threat")
	}
	cp := *t
	return &cp, nil
}

func (r *ThreatRepository) Update(ctx context.Context, t *threat.Threat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.threats[t.ID]; !ok {
		return errors.NotFound("Threat")
	}
	cp := *t
	r.threats[t.ID] = &cp
	return nil
}

func (r *ThreatRepository) List(ctx context.Context, filter threat.Filter, limit, offset int) ([]*threat.Threat, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*threat.Threat, 0, len(r.threats))
	for _, t := range r.threats {
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Severity != "" && t.Severity != filter.Severity {
			continue
		}
		if filter.ActiveOnly && !t.IsActive {
			continue
		}
		cp := *t
		matched = append(matched, &cp)
	}

	sortByIDDesc(matched, func(t *threat.Threat) int64 { return t.ID })
	total := int64(len(matched))
	return paginate(matched, limit, offset), total, nil
}

func (r *ThreatRepository) CountActiveBySeverity(ctx context.Context) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, t := range r.threats {
		if t.IsActive {
			counts[t.Severity]++
		}
	}
	return counts, nil
}

func (r *ThreatRepository) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, t := range r.threats {
		if !t.IsActive && t.DetectedAt.Before(cutoff) {
			delete(r.threats, id)
			deleted++
		}
	}
	return deleted, nil
}
