package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/agisfl/agisfl/internal/domain/threat"
	"github.com/agisfl/agisfl/internal/pkg/logger"
	"github.com/agisfl/agisfl/internal/pkg/metrics"
)

// ThreatService implements threat.Service
type ThreatService struct {
	repo   threat.Repository
	logger *logger.Logger
	seq    atomic.Int64
}

// NewThreatService creates a new threat service
func NewThreatService(repo threat.Repository, log *logger.Logger) threat.Service {
	return &ThreatService{
		repo:   repo,
		logger: log,
	}
}

// Create creates a new threat
func (s *ThreatService) Create(ctx context.Context, t *threat.Threat) (int64, error) {
	if t.ThreatID == "" {
		t.ThreatID = s.newThreatCode(time.Now())
	}
	t.IsActive = true

	id, err := s.repo.Create(ctx, t)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to create threat")
		return 0, err
	}
	t.ID = id

	metrics.RecordThreatDetected(t.Severity)
	s.logger.WithFields(map[string]interface{}{
		"threat_id":   id,
		"threat_code": t.ThreatID,
		"severity":    t.Severity,
		"type":        t.Type,
		"source_ip":   t.SourceIP,
	}).Info("Threat recorded")

	return id, nil
}

// GetByID retrieves a threat by ID
func (s *ThreatService) GetByID(ctx context.Context, id int64) (*threat.Threat, error) {
	return s.repo.GetByID(ctx, id)
}

// Mitigate marks a threat as inactive. Mitigating an already mitigated
// threat returns the current state without error.
func (s *ThreatService) Mitigate(ctx context.Context, id int64) (*threat.Threat, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !t.IsActive {
		return t, nil
	}

	t.IsActive = false
	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.ErrorWithErr(err, "Failed to mitigate threat")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"threat_id":   id,
		"threat_code": t.ThreatID,
	}).Info("Threat mitigated")

	return t, nil
}

// List retrieves threats with filters and pagination
func (s *ThreatService) List(ctx context.Context, filter threat.Filter, limit, offset int) ([]*threat.Threat, int64, error) {
	return s.repo.List(ctx, filter, limit, offset)
}

// GetSummary gets active threat counts by severity
func (s *ThreatService) GetSummary(ctx context.Context) (map[string]int, error) {
	counts, err := s.repo.CountActiveBySeverity(ctx)
	if err != nil {
		return nil, err
	}

	for severity, count := range counts {
		metrics.SetActiveThreats(severity, float64(count))
	}
	return counts, nil
}

// newThreatCode builds a threat code, e.g. THR-1756425600-3. The counter
// disambiguates threats recorded within the same second.
func (s *ThreatService) newThreatCode(now time.Time) string {
	return fmt.Sprintf("THR-%d-%d", now.Unix(), s.seq.Add(1))
}
