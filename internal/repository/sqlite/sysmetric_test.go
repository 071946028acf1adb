package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/agisfl/agisfl/internal/domain/sysmetric"
	"github.com/agisfl/agisfl/internal/testutil"
)

func TestSysMetricRepository_Latest(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSysMetricRepository(db)
	ctx := context.Background()

	seed := []*sysmetric.Metric{
		{MetricType: sysmetric.TypeCPU, Component: "host", Value: 40, Unit: "percent", Status: sysmetric.StatusNormal},
		{MetricType: sysmetric.TypeCPU, Component: "host", Value: 55, Unit: "percent", Status: sysmetric.StatusNormal},
		{MetricType: sysmetric.TypeMemory, Component: "host", Value: 70, Unit: "percent", Status: sysmetric.StatusNormal},
	}
	for _, m := range seed {
		if _, err := repo.Create(ctx, m); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	latest, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("Latest() returned %d rows, want 2", len(latest))
	}

	byType := make(map[string]float64)
	for _, m := range latest {
		byType[m.MetricType] = m.Value
	}
	if byType[sysmetric.TypeCPU] != 55 {
		t.Errorf("Latest() cpu = %v, want 55 (most recent sample)", byType[sysmetric.TypeCPU])
	}
	if byType[sysmetric.TypeMemory] != 70 {
		t.Errorf("Latest() memory = %v, want 70", byType[sysmetric.TypeMemory])
	}
}

func TestSysMetricRepository_History(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSysMetricRepository(db)
	ctx := context.Background()

	now := time.Now()
	seed := []*sysmetric.Metric{
		{MetricType: sysmetric.TypeCPU, Component: "host", Value: 10, Unit: "percent", Status: sysmetric.StatusNormal, Timestamp: now.Add(-2 * time.Hour)},
		{MetricType: sysmetric.TypeCPU, Component: "host", Value: 20, Unit: "percent", Status: sysmetric.StatusNormal, Timestamp: now.Add(-30 * time.Minute)},
		{MetricType: sysmetric.TypeCPU, Component: "host", Value: 30, Unit: "percent", Status: sysmetric.StatusNormal, Timestamp: now.Add(-5 * time.Minute)},
		{MetricType: sysmetric.TypeNetwork, Component: "host", Value: 99, Unit: "mbps", Status: sysmetric.StatusNormal, Timestamp: now.Add(-5 * time.Minute)},
	}
	for _, m := range seed {
		if _, err := repo.Create(ctx, m); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	history, err := repo.History(ctx, sysmetric.TypeCPU, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("History() returned %d rows, want 2", len(history))
	}
	// Oldest first
	if history[0].Value != 20 || history[1].Value != 30 {
		t.Errorf("History() order = [%v, %v], want [20, 30]", history[0].Value, history[1].Value)
	}
}

func TestSysMetricRepository_DeleteBefore(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSysMetricRepository(db)
	ctx := context.Background()

	now := time.Now()
	seed := []*sysmetric.Metric{
		{MetricType: sysmetric.TypeCPU, Component: "host", Value: 10, Unit: "percent", Status: sysmetric.StatusNormal, Timestamp: now.Add(-48 * time.Hour)},
		{MetricType: sysmetric.TypeCPU, Component: "host", Value: 20, Unit: "percent", Status: sysmetric.StatusNormal, Timestamp: now},
	}
	for _, m := range seed {
		if _, err := repo.Create(ctx, m); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	removed, err := repo.DeleteBefore(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("DeleteBefore() removed = %d, want 1", removed)
	}

	latest, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if len(latest) != 1 || latest[0].Value != 20 {
		t.Errorf("Latest() after sweep = %+v, want single sample of 20", latest)
	}
}
