package services

import (
	"context"

	"github.com/agisfl/agisfl/internal/domain/attackpath"
	"github.com/agisfl/agisfl/internal/pkg/logger"
)

// AttackPathService implements attackpath.Service
type AttackPathService struct {
	repo   attackpath.Repository
	logger *logger.Logger
}

// NewAttackPathService creates a new attack path service
func NewAttackPathService(repo attackpath.Repository, log *logger.Logger) attackpath.Service {
	return &AttackPathService{
		repo:   repo,
		logger: log,
	}
}

func (s *AttackPathService) Create(ctx context.Context, p *attackpath.AttackPath) (int64, error) {
	id, err := s.repo.Create(ctx, p)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to create attack path")
		return 0, err
	}
	p.ID = id

	s.logger.WithFields(map[string]interface{}{
		"attack_path_id": id,
		"severity":       p.Severity,
	}).Info("Attack path created")

	return id, nil
}

func (s *AttackPathService) GetByID(ctx context.Context, id int64) (*attackpath.AttackPath, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AttackPathService) List(ctx context.Context, limit int) ([]*attackpath.AttackPath, error) {
	return s.repo.List(ctx, limit)
}
