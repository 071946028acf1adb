package services

import (
	"context"
	"testing"
	"time"

	"github.com/agisfl/agisfl/internal/domain/sysmetric"
	"github.com/agisfl/agisfl/internal/testutil"
)

func TestStatusForValue(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{value: 10, want: sysmetric.StatusNormal},
		{value: 74.9, want: sysmetric.StatusNormal},
		{value: 75, want: sysmetric.StatusElevated},
		{value: 89.9, want: sysmetric.StatusElevated},
		{value: 90, want: sysmetric.StatusCritical},
		{value: 100, want: sysmetric.StatusCritical},
	}

	for _, tt := range tests {
		if got := statusForValue(tt.value); got != tt.want {
			t.Errorf("statusForValue(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestSysMetricService_Record(t *testing.T) {
	mockRepo := testutil.NewMockSysMetricRepository()
	service := NewSysMetricService(mockRepo, testLogger())
	ctx := context.Background()

	m := &sysmetric.Metric{
		MetricType: sysmetric.TypeCPU,
		Component:  "fl_ids_engine",
		Value:      92.5,
		Unit:       "percent",
		Timestamp:  time.Now(),
	}
	id, err := service.Record(ctx, m)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if id == 0 {
		t.Error("Record() returned zero id")
	}
	if m.Status != sysmetric.StatusCritical {
		t.Errorf("Record() derived status = %v, want critical", m.Status)
	}

	// Explicit status is kept
	m2 := &sysmetric.Metric{
		MetricType: sysmetric.TypeMemory,
		Component:  "data_pipeline",
		Value:      95,
		Unit:       "percent",
		Status:     sysmetric.StatusNormal,
		Timestamp:  time.Now(),
	}
	if _, err := service.Record(ctx, m2); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if m2.Status != sysmetric.StatusNormal {
		t.Errorf("Record() overwrote explicit status: %v", m2.Status)
	}
}

func TestSysMetricService_History(t *testing.T) {
	mockRepo := testutil.NewMockSysMetricRepository()
	service := NewSysMetricService(mockRepo, testLogger())
	ctx := context.Background()

	now := time.Now()
	samples := []*sysmetric.Metric{
		{MetricType: sysmetric.TypeCPU, Component: "c", Value: 10, Unit: "percent", Timestamp: now.Add(-2 * time.Hour)},
		{MetricType: sysmetric.TypeCPU, Component: "c", Value: 20, Unit: "percent", Timestamp: now.Add(-10 * time.Minute)},
		{MetricType: sysmetric.TypeMemory, Component: "c", Value: 30, Unit: "percent", Timestamp: now.Add(-5 * time.Minute)},
	}
	for _, m := range samples {
		if _, err := service.Record(ctx, m); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := service.History(ctx, sysmetric.TypeCPU, time.Hour)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("History() returned %d samples, want 1", len(got))
	}
	if got[0].Value != 20 {
		t.Errorf("History() value = %v, want 20", got[0].Value)
	}
}
