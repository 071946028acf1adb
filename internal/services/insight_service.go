package services

import (
	"context"
	"fmt"

	"github.com/agisfl/agisfl/internal/domain/insight"
	"github.com/agisfl/agisfl/internal/integrations"
	"github.com/agisfl/agisfl/internal/pkg/logger"
)

// InsightService implements insight.Service
type InsightService struct {
	repo     insight.Repository
	narrator *integrations.Narrator
	logger   *logger.Logger
}

// NewInsightService creates a new insight service. narrator may be nil.
func NewInsightService(repo insight.Repository, narrator *integrations.Narrator, log *logger.Logger) insight.Service {
	return &InsightService{
		repo:     repo,
		narrator: narrator,
		logger:   log,
	}
}

// Create appends an insight. When a narrator is configured the description
// is rewritten by the LLM, keeping the generated text as fallback.
func (s *InsightService) Create(ctx context.Context, ins *insight.Insight) (int64, error) {
	ins.IsActive = true

	if s.narrator != nil && s.narrator.Enabled() {
		prompt := fmt.Sprintf(
			"Rewrite this security finding as a concise analyst summary (2 sentences max): %s. %s",
			ins.Title, ins.Description,
		)
		ins.Description = s.narrator.Narrate(ctx, prompt, ins.Description)
	}

	id, err := s.repo.Create(ctx, ins)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to create insight")
		return 0, err
	}
	ins.ID = id

	s.logger.WithFields(map[string]interface{}{
		"insight_id": id,
		"type":       ins.Type,
		"severity":   ins.Severity,
	}).Info("Insight created")

	return id, nil
}

// ListActive retrieves active insights
func (s *InsightService) ListActive(ctx context.Context, limit int) ([]*insight.Insight, error) {
	return s.repo.ListActive(ctx, limit)
}

// Dismiss marks an insight inactive
func (s *InsightService) Dismiss(ctx context.Context, id int64) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		s.logger.ErrorWithErr(err, "Failed to dismiss insight")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"insight_id": id,
	}).Info("Insight dismissed")

	return nil
}
