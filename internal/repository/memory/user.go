package memory

import (
	"context"
	"sync"
	"time"

	"github.com/agisfl/agisfl/internal/domain/user"
	"github.com/agisfl/agisfl/internal/pkg/errors"
)

// UserRepository is an in-memory user store for demo deployments.
type UserRepository struct {
	mu      sync.RWMutex
	users   map[int64]*user.User
	byEmail map[string]int64
	nextID  int64
}

func NewUserRepository() user.Repository {
	return &UserRepository{
		users:   make(map[int64]*user.User),
		byEmail: make(map[string]int64),
		nextID:  1,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return errors.Conflict("User with this email already exists")
	}

	now := time.Now()
	u.ID = r.nextID
	u.CreatedAt = now
	u.UpdatedAt = now
	r.nextID++

	cp := *u
	r.users[u.ID] = &cp
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, errors.NotFound("User")
	}
	cp := *r.users[id]
	return &cp, nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.users[u.ID]
	if !ok {
		return errors.NotFound("User")
	}

	if prev.Email != u.Email {
		if _, exists := r.byEmail[u.Email]; exists {
			return errors.Conflict("User with this email already exists")
		}
		delete(r.byEmail, prev.Email)
		r.byEmail[u.Email] = u.ID
	}

	u.UpdatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}
