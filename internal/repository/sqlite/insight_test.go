package sqlite

import (
	"context"
	"testing"

	"github.com/agisfl/agisfl/internal/domain/insight"
	"github.com/agisfl/agisfl/internal/pkg/errors"
	"github.com/agisfl/agisfl/internal/testutil"
)

func TestInsightRepository_CreateAndListActive(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewInsightRepository(db)
	ctx := context.Background()

	seed := []*insight.Insight{
		{Type: insight.TypeAnomalyDetection, Title: "a", Description: "a", Severity: "medium", Confidence: 0.8, IsActive: true},
		{Type: insight.TypeTrendAnalysis, Title: "b", Description: "b", Severity: "low", Confidence: 0.6, IsActive: true},
		{Type: insight.TypeRiskAssessment, Title: "c", Description: "c", Severity: "high", Confidence: 0.9, IsActive: false},
	}
	for _, ins := range seed {
		if _, err := repo.Create(ctx, ins); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	active, err := repo.ListActive(ctx, 10)
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("ListActive() returned %d insights, want 2", len(active))
	}
	// Newest first
	if active[0].Title != "b" {
		t.Errorf("ListActive() first = %v, want b", active[0].Title)
	}
}

func TestInsightRepository_Deactivate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewInsightRepository(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, &insight.Insight{
		Type: insight.TypeAnomalyDetection, Title: "a", Description: "a", Severity: "low", IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Deactivate(ctx, id); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}

	active, err := repo.ListActive(ctx, 10)
	if err != nil {
		t.Fatalf("ListActive() error = %v", err)
	}
	if len(active) != 0 {
		t.Errorf("ListActive() returned %d insights after deactivate, want 0", len(active))
	}

	err = repo.Deactivate(ctx, 999)
	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeNotFound {
		t.Errorf("Deactivate() unknown error = %v, want not found", err)
	}
}
