package simulator

import (
	"testing"
	"time"
)

func TestFLCoordinator_TrainingCadence(t *testing.T) {
	c := NewFLCoordinator(time.Second, nil, testLogger())

	// Rounds only complete every trainEveryNTicks ticks
	for i := 0; i < trainEveryNTicks-1; i++ {
		c.tick()
	}
	if got := c.Snapshot().Round; got != 0 {
		t.Errorf("Round after %d ticks = %d, want 0", trainEveryNTicks-1, got)
	}

	c.tick()
	if got := c.Snapshot().Round; got != 1 {
		t.Errorf("Round after %d ticks = %d, want 1", trainEveryNTicks, got)
	}
}

func TestFLCoordinator_PauseAndResume(t *testing.T) {
	pub := &capturePublisher{}
	c := NewFLCoordinator(time.Second, pub, testLogger())

	c.Pause()
	for i := 0; i < trainEveryNTicks*2; i++ {
		c.tick()
	}
	snap := c.Snapshot()
	if snap.Status != FLStatusPaused {
		t.Errorf("Status = %v, want paused", snap.Status)
	}
	if snap.Round != 0 {
		t.Errorf("Round advanced while paused: %d", snap.Round)
	}
	if len(pub.events) != 0 {
		t.Errorf("events published while paused: %v", pub.events)
	}

	c.Resume()
	for i := 0; i < trainEveryNTicks; i++ {
		c.tick()
	}
	snap = c.Snapshot()
	if snap.Status != FLStatusActive {
		t.Errorf("Status = %v, want active", snap.Status)
	}
	if snap.Round != 1 {
		t.Errorf("Round after resume = %d, want 1", snap.Round)
	}
	if len(pub.events) != 1 || pub.events[0] != "fl_round_complete" {
		t.Errorf("events = %v, want one fl_round_complete", pub.events)
	}
}

func TestFLCoordinator_Reset(t *testing.T) {
	c := NewFLCoordinator(time.Second, nil, testLogger())

	for i := 0; i < trainEveryNTicks*3; i++ {
		c.tick()
	}
	if got := c.Snapshot().Round; got != 3 {
		t.Fatalf("Round = %d, want 3", got)
	}

	c.Reset()
	snap := c.Snapshot()
	if snap.Round != 0 {
		t.Errorf("Round after reset = %d, want 0", snap.Round)
	}
	if !snap.LastTrainedAt.IsZero() {
		t.Errorf("LastTrainedAt after reset = %v, want zero", snap.LastTrainedAt)
	}
	if snap.Status != FLStatusActive {
		t.Errorf("Reset changed status to %v", snap.Status)
	}

	// Node roster restored
	if len(snap.Nodes) != 3 {
		t.Fatalf("Nodes = %d, want 3", len(snap.Nodes))
	}
	wantIDs := map[string]bool{"node_rf_001": true, "node_if_002": true, "node_nn_003": true}
	for _, n := range snap.Nodes {
		if !wantIDs[n.ID] {
			t.Errorf("unexpected node %q after reset", n.ID)
		}
		if n.LastRound != 0 {
			t.Errorf("node %q LastRound = %d after reset", n.ID, n.LastRound)
		}
	}
}

func TestFLCoordinator_AccuracyConverges(t *testing.T) {
	c := NewFLCoordinator(time.Second, nil, testLogger())

	for i := 0; i < trainEveryNTicks*50; i++ {
		c.tick()
	}

	snap := c.Snapshot()
	if snap.ModelAccuracy < 0.9 || snap.ModelAccuracy > 0.999 {
		t.Errorf("ModelAccuracy after 50 rounds = %v, want near %v", snap.ModelAccuracy, targetAccuracy)
	}
	for _, n := range snap.Nodes {
		if n.Accuracy < 0.5 || n.Accuracy > 0.999 {
			t.Errorf("node %q accuracy out of bounds: %v", n.ID, n.Accuracy)
		}
		if n.LastRound != snap.Round {
			t.Errorf("node %q LastRound = %d, want %d", n.ID, n.LastRound, snap.Round)
		}
	}
}

func TestFLCoordinator_SnapshotIsolation(t *testing.T) {
	c := NewFLCoordinator(time.Second, nil, testLogger())

	snap := c.Snapshot()
	snap.Nodes[0].Accuracy = 0

	if c.Snapshot().Nodes[0].Accuracy == 0 {
		t.Error("Snapshot() shares node slice with coordinator state")
	}
}
