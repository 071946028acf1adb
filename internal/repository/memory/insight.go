package memory

import (
	"context"
	"sync"
	"time"

	"github.com/agisfl/agisfl/internal/domain/insight"
	"github.com/agisfl/agisfl/internal/pkg/errors"
)

// InsightRepository is an in-memory insight store for demo deployments.
type InsightRepository struct {
	mu       sync.RWMutex
	insights map[int64]*insight.Insight
	nextID   int64
}

func NewInsightRepository() insight.Repository {
	return &InsightRepository{insights: make(map[int64]*insight.Insight), nextID: 1}
}

func (r *InsightRepository) Create(ctx context.Context, ins *insight.Insight) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ins.ID = r.nextID
	if ins.CreatedAt.IsZero() {
		ins.CreatedAt = time.Now()
	}
	r.nextID++

	cp := *ins
	r.insights[ins.ID] = &cp
	return ins.ID, nil
}

func (r *InsightRepository) ListActive(ctx context.Context, limit int) ([]*insight.Insight, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*insight.Insight, 0, len(r.insights))
	for _, ins := range r.insights {
		if !ins.IsActive {
			continue
		}
		cp := *ins
		matched = append(matched, &cp)
	}

	sortByIDDesc(matched, func(i *insight.Insight) int64 { return i.ID })
	return paginate(matched, limit, 0), nil
}

func (r *InsightRepository) Deactivate(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ins, ok := r.insights[id]
	if !ok {
		return errors.NotFound("Insight")
	}
	ins.IsActive = false
	return nil
}
