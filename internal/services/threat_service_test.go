package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/agisfl/agisfl/internal/domain/threat"
	"github.com/agisfl/agisfl/internal/testutil"
)

func TestThreatService_Create(t *testing.T) {
	mockRepo := testutil.NewMockThreatRepository()
	service := NewThreatService(mockRepo, testLogger())
	ctx := context.Background()

	thr := &threat.Threat{
		Name:     "SYN flood",
		Type:     threat.TypeDoS,
		Severity: threat.SeverityHigh,
		SourceIP: "203.0.113.7",
	}
	id, err := service.Create(ctx, thr)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if id == 0 {
		t.Error("Create() returned zero id")
	}
	if thr.ID != id {
		t.Errorf("Create() model ID = %d, want %d", thr.ID, id)
	}
	if !thr.IsActive {
		t.Error("Create() threat should be active")
	}

	pattern := regexp.MustCompile(`^THR-\d+-\d+$`)
	if !pattern.MatchString(thr.ThreatID) {
		t.Errorf("Create() threat code = %q, want format THR-<unix>-<n>", thr.ThreatID)
	}
}

func TestThreatService_Create_UniqueCodes(t *testing.T) {
	mockRepo := testutil.NewMockThreatRepository()
	service := NewThreatService(mockRepo, testLogger())
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		thr := &threat.Threat{
			Name:     "Port sweep",
			Type:     threat.TypeProbe,
			Severity: threat.SeverityLow,
		}
		if _, err := service.Create(ctx, thr); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if seen[thr.ThreatID] {
			t.Fatalf("Create() duplicate threat code %q", thr.ThreatID)
		}
		seen[thr.ThreatID] = true
	}
}

func TestThreatService_Mitigate(t *testing.T) {
	mockRepo := testutil.NewMockThreatRepository()
	service := NewThreatService(mockRepo, testLogger())
	ctx := context.Background()

	id, err := service.Create(ctx, &threat.Threat{
		Name:     "Beaconing host",
		Type:     threat.TypeMalware,
		Severity: threat.SeverityCritical,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	thr, err := service.Mitigate(ctx, id)
	if err != nil {
		t.Fatalf("Mitigate() error = %v", err)
	}
	if thr.IsActive {
		t.Error("Mitigate() threat still active")
	}

	// Mitigating again returns the current state without error
	again, err := service.Mitigate(ctx, id)
	if err != nil {
		t.Fatalf("Mitigate() repeat error = %v", err)
	}
	if again.IsActive {
		t.Error("Mitigate() repeat reactivated threat")
	}
}

func TestThreatService_Mitigate_NotFound(t *testing.T) {
	mockRepo := testutil.NewMockThreatRepository()
	service := NewThreatService(mockRepo, testLogger())

	if _, err := service.Mitigate(context.Background(), 42); err == nil {
		t.Error("Mitigate() expected error for unknown id, got nil")
	}
}

func TestThreatService_GetSummary(t *testing.T) {
	mockRepo := testutil.NewMockThreatRepository()
	service := NewThreatService(mockRepo, testLogger())
	ctx := context.Background()

	ids := make([]int64, 0, 3)
	for _, sev := range []string{threat.SeverityHigh, threat.SeverityHigh, threat.SeverityLow} {
		id, err := service.Create(ctx, &threat.Threat{Name: "t", Type: threat.TypeProbe, Severity: sev})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		ids = append(ids, id)
	}

	if _, err := service.Mitigate(ctx, ids[2]); err != nil {
		t.Fatalf("Mitigate() error = %v", err)
	}

	counts, err := service.GetSummary(ctx)
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}
	if counts[threat.SeverityHigh] != 2 {
		t.Errorf("GetSummary() high = %d, want 2", counts[threat.SeverityHigh])
	}
	if counts[threat.SeverityLow] != 0 {
		t.Errorf("GetSummary() low = %d, want 0 after mitigation", counts[threat.SeverityLow])
	}
}

func TestThreatService_List_ActiveOnly(t *testing.T) {
	mockRepo := testutil.NewMockThreatRepository()
	service := NewThreatService(mockRepo, testLogger())
	ctx := context.Background()

	id1, _ := service.Create(ctx, &threat.Threat{Name: "a", Type: threat.TypeDoS, Severity: threat.SeverityLow})
	if _, err := service.Create(ctx, &threat.Threat{Name: "b", Type: threat.TypeDoS, Severity: threat.SeverityLow}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := service.Mitigate(ctx, id1); err != nil {
		t.Fatalf("Mitigate() error = %v", err)
	}

	items, total, err := service.List(ctx, threat.Filter{ActiveOnly: true}, 10, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Errorf("List() total = %d, items = %d, want 1 active", total, len(items))
	}
	if len(items) == 1 && items[0].Name != "b" {
		t.Errorf("List() returned %v, want b", items[0].Name)
	}
}
