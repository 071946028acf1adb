package worker

import (
	"context"
	"testing"
	"time"

	"github.com/agisfl/agisfl/internal/domain/sysmetric"
	"github.com/agisfl/agisfl/internal/domain/threat"
	"github.com/agisfl/agisfl/internal/pkg/logger"
	"github.com/agisfl/agisfl/internal/testutil"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func TestRetentionSweeper_Sweep(t *testing.T) {
	metricsRepo := testutil.NewMockSysMetricRepository()
	threatsRepo := testutil.NewMockThreatRepository()
	ctx := context.Background()

	old := time.Now().Add(-72 * time.Hour)
	metricsRepo.Create(ctx, &sysmetric.Metric{MetricType: sysmetric.TypeCPU, Component: "c", Value: 1, Unit: "percent", Timestamp: old})
	metricsRepo.Create(ctx, &sysmetric.Metric{MetricType: sysmetric.TypeCPU, Component: "c", Value: 2, Unit: "percent", Timestamp: time.Now()})

	threatsRepo.Create(ctx, &threat.Threat{ThreatID: "THR-1", Name: "old mitigated", Type: threat.TypeProbe, Severity: threat.SeverityLow, IsActive: false, DetectedAt: old})
	threatsRepo.Create(ctx, &threat.Threat{ThreatID: "THR-2", Name: "old active", Type: threat.TypeProbe, Severity: threat.SeverityLow, IsActive: true, DetectedAt: old})
	threatsRepo.Create(ctx, &threat.Threat{ThreatID: "THR-3", Name: "recent mitigated", Type: threat.TypeProbe, Severity: threat.SeverityLow, IsActive: false, DetectedAt: time.Now()})

	sweeper := NewRetentionSweeper(metricsRepo, threatsRepo, "0 3 * * *", 24*time.Hour, 24*time.Hour, testLogger())
	sweeper.Sweep(ctx)

	if len(metricsRepo.Metrics) != 1 {
		t.Errorf("metrics after sweep = %d, want 1", len(metricsRepo.Metrics))
	}
	if len(threatsRepo.Threats) != 2 {
		t.Errorf("threats after sweep = %d, want 2", len(threatsRepo.Threats))
	}
	if _, ok := threatsRepo.Threats[2]; !ok {
		t.Error("sweep removed an active threat")
	}
}

func TestRetentionSweeper_Start_InvalidSchedule(t *testing.T) {
	sweeper := NewRetentionSweeper(
		testutil.NewMockSysMetricRepository(),
		testutil.NewMockThreatRepository(),
		"not a schedule",
		time.Hour, time.Hour,
		testLogger(),
	)

	if err := sweeper.Start(context.Background()); err == nil {
		t.Error("Start() expected error for invalid schedule")
	}
}

func TestRetentionSweeper_StartStop(t *testing.T) {
	sweeper := NewRetentionSweeper(
		testutil.NewMockSysMetricRepository(),
		testutil.NewMockThreatRepository(),
		"0 3 * * *",
		time.Hour, time.Hour,
		testLogger(),
	)

	if err := sweeper.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	sweeper.Stop()

	// Stop on a never-started sweeper is safe
	idle := NewRetentionSweeper(
		testutil.NewMockSysMetricRepository(),
		testutil.NewMockThreatRepository(),
		"0 3 * * *",
		time.Hour, time.Hour,
		testLogger(),
	)
	idle.Stop()
}
