package services

import (
	"context"
	"fmt"
	"time"

	"github.com/agisfl/agisfl/internal/domain/incident"
	"github.com/agisfl/agisfl/internal/pkg/logger"
	"github.com/agisfl/agisfl/internal/pkg/metrics"
)

// IncidentService implements incident.Service
type IncidentService struct {
	repo   incident.Repository
	logger *logger.Logger
}

// NewIncidentService creates a new incident service
func NewIncidentService(repo incident.Repository, log *logger.Logger) incident.Service {
	return &IncidentService{
		repo:   repo,
		logger: log,
	}
}

// Create creates a new incident
func (s *IncidentService) Create(ctx context.Context, inc *incident.Incident) (int64, error) {
	if inc.Status == "" {
		inc.Status = incident.StatusOpen
	}
	if inc.IncidentID == "" {
		inc.IncidentID = newIncidentCode(time.Now())
	}

	id, err := s.repo.Create(ctx, inc)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to create incident")
		return 0, err
	}
	inc.ID = id

	metrics.RecordIncidentOpened()
	s.logger.WithFields(map[string]interface{}{
		"incident_id":   id,
		"incident_code": inc.IncidentID,
		"severity":      inc.Severity,
		"type":          inc.Type,
	}).Info("Incident created")

	return id, nil
}

// GetByID retrieves an incident by ID
func (s *IncidentService) GetByID(ctx context.Context, id int64) (*incident.Incident, error) {
	return s.repo.GetByID(ctx, id)
}

// Patch applies a partial update to an incident. Fields left nil in the
// patch keep their stored values, so replaying a patch is a no-op.
func (s *IncidentService) Patch(ctx context.Context, id int64, patch incident.Patch) (*incident.Incident, error) {
	inc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		inc.Title = *patch.Title
	}
	if patch.Description != nil {
		inc.Description = *patch.Description
	}
	if patch.Severity != nil {
		inc.Severity = *patch.Severity
	}
	if patch.Status != nil {
		inc.Status = *patch.Status
	}
	if patch.AssigneeID != nil {
		inc.AssigneeID = patch.AssigneeID
	}
	if patch.RiskScore != nil {
		inc.RiskScore = *patch.RiskScore
	}

	if err := s.repo.Update(ctx, inc); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update incident")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"incident_id": id,
		"status":      inc.Status,
	}).Info("Incident updated")

	return inc, nil
}

// Acknowledge moves an open incident to investigating. Acknowledging an
// incident that already left the open state is a no-op.
func (s *IncidentService) Acknowledge(ctx context.Context, id int64) error {
	inc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if inc.Status != incident.StatusOpen {
		return nil
	}

	inc.Status = incident.StatusInvestigating
	if err := s.repo.Update(ctx, inc); err != nil {
		s.logger.ErrorWithErr(err, "Failed to acknowledge incident")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"incident_id": id,
	}).Info("Incident acknowledged")

	return nil
}

// List retrieves incidents with filters and pagination
func (s *IncidentService) List(ctx context.Context, filter incident.Filter, limit, offset int) ([]*incident.Incident, int64, error) {
	return s.repo.List(ctx, filter, limit, offset)
}

// GetSummary gets open incident counts by severity
func (s *IncidentService) GetSummary(ctx context.Context) (map[string]int, error) {
	return s.repo.CountBySeverity(ctx)
}

// newIncidentCode builds a human-readable incident code, e.g.
// INC-20260829-1756425600.
func newIncidentCode(now time.Time) string {
	return fmt.Sprintf("INC-%s-%d", now.Format("20060102"), now.Unix())
}
