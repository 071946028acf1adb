package memory

import (
	"context"
	"sync"
	"time"

	"github.com/agisfl/agisfl/internal/domain/attackpath"
	"github.com/agisfl/agisfl/internal/pkg/errors"
)

// AttackPathRepository is an in-memory attack path store for demo deployments.
type AttackPathRepository struct {
	mu     sync.RWMutex
	paths  map[int64]*attackpath.AttackPath
	nextID int64
}

func NewAttackPathRepository() attackpath.Repository {
	return &AttackPathRepository{paths: make(map[int64]*attackpath.AttackPath), nextID: 1}
}

func (r *AttackPathRepository) Create(ctx context.Context, p *attackpath.AttackPath) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	r.nextID++

	cp := *p
	r.paths[p.ID] = &cp
	return p.ID, nil
}

func (r *AttackPathRepository) GetByID(ctx context.Context, id int64) (*attackpath.AttackPath, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.paths[id]
	if !ok {
		return nil, errors.NotFound("Attack path")
	}
	cp := *p
	return &cp, nil
}

func (r *AttackPathRepository) List(ctx context.Context, limit int) ([]*attackpath.AttackPath, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*attackpath.AttackPath, 0, len(r.paths))
	for _, p := range r.paths {
		cp := *p
		matched = append(matched, &cp)
	}

	sortByIDDesc(matched, func(p *attackpath.AttackPath) int64 { return p.ID })
	return paginate(matched, limit, 0), nil
}
