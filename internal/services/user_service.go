package services

import (
	"context"

	"github.com/agisfl/agisfl/internal/auth"
	"github.com/agisfl/agisfl/internal/domain/user"
	"github.com/agisfl/agisfl/internal/pkg/errors"
	"github.com/agisfl/agisfl/internal/pkg/logger"
)

// UserService implements user.Service
type UserService struct {
	repo       user.Repository
	bcryptCost int
	logger     *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, bcryptCost int, log *logger.Logger) user.Service {
	return &UserService{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     log,
	}
}

// Register creates a new user with a hashed password
func (s *UserService) Register(ctx context.Context, email, username, password, role string) (*user.User, error) {
	if role == "" {
		role = user.RoleViewer
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	u := &user.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    u.Role,
	}).Info("User registered")

	return u, nil
}

// Authenticate verifies credentials and returns the user. Lookup and
// password failures return the same error to avoid leaking which emails
// exist.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.Unauthorized("Invalid email or password")
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, errors.Unauthorized("Invalid email or password")
	}

	return u, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}
