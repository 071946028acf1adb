package services

import (
	"context"
	"time"

	"github.com/agisfl/agisfl/internal/domain/sysmetric"
	"github.com/agisfl/agisfl/internal/pkg/logger"
)

// SysMetricService implements sysmetric.Service
type SysMetricService struct {
	repo   sysmetric.Repository
	logger *logger.Logger
}

// NewSysMetricService creates a new system metric service
func NewSysMetricService(repo sysmetric.Repository, log *logger.Logger) sysmetric.Service {
	return &SysMetricService{
		repo:   repo,
		logger: log,
	}
}

// Record appends a metric sample, deriving the status label from the value
func (s *SysMetricService) Record(ctx context.Context, m *sysmetric.Metric) (int64, error) {
	if m.Status == "" {
		m.Status = statusForValue(m.Value)
	}

	id, err := s.repo.Create(ctx, m)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to record metric")
		return 0, err
	}
	m.ID = id

	return id, nil
}

// Latest returns the most recent sample per type and component
func (s *SysMetricService) Latest(ctx context.Context) ([]*sysmetric.Metric, error) {
	return s.repo.Latest(ctx)
}

// History returns samples of the given type over the trailing window
func (s *SysMetricService) History(ctx context.Context, metricType string, window time.Duration) ([]*sysmetric.Metric, error) {
	return s.repo.History(ctx, metricType, time.Now().Add(-window))
}

// statusForValue labels utilization percentages
func statusForValue(value float64) string {
	switch {
	case value >= 90:
		return sysmetric.StatusCritical
	case value >= 75:
		return sysmetric.StatusElevated
	default:
		return sysmetric.StatusNormal
	}
}
