package handlers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/agisfl/agisfl/internal/domain/threat"
	"github.com/agisfl/agisfl/internal/services"
	"github.com/agisfl/agisfl/internal/simulator"
	"github.com/agisfl/agisfl/internal/testutil"
)

type wsTestEnv struct {
	server      *httptest.Server
	hub         *Hub
	threats     threat.Service
	threatRepo  *testutil.MockThreatRepository
	coordinator *simulator.FLCoordinator
	cancel      context.CancelFunc
}

func newWSTestEnv(t *testing.T, broadcastInterval, pingInterval time.Duration) *wsTestEnv {
	t.Helper()
	log := testLogger()

	incidentRepo := testutil.NewMockIncidentRepository()
	threatRepo := testutil.NewMockThreatRepository()
	metricRepo := testutil.NewMockSysMetricRepository()
	insightRepo := testutil.NewMockInsightRepository()

	incidents := services.NewIncidentService(incidentRepo, log)
	threats := services.NewThreatService(threatRepo, log)
	metricsSvc := services.NewSysMetricService(metricRepo, log)
	insights := services.NewInsightService(insightRepo, nil, log)

	coordinator := simulator.NewFLCoordinator(time.Hour, nil, log)
	monitor := simulator.NewSystemMonitor(time.Hour, log)

	hub := NewHub(SnapshotSources{
		Incidents:   incidents,
		Threats:     threats,
		Metrics:     metricsSvc,
		Insights:    insights,
		Coordinator: coordinator,
		Monitor:     monitor,
	}, broadcastInterval, pingInterval, log)
	coordinator.SetPublisher(hub)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	handler := NewWSHandler(hub, incidents, threats, coordinator, log)
	server := httptest.NewServer(http.HandlerFunc(handler.Serve))

	env := &wsTestEnv{
		server:      server,
		hub:         hub,
		threats:     threats,
		threatRepo:  threatRepo,
		coordinator: coordinator,
		cancel:      cancel,
	}
	t.Cleanup(func() {
		cancel()
		server.Close()
	})
	return env
}

func (e *wsTestEnv) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(e.server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn, timeout time.Duration) wsFrame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(timeout))
	var frame wsFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	return frame
}

// awaitFrame reads frames until one of the wanted type arrives, skipping
// interleaved periodic broadcasts
func awaitFrame(t *testing.T, conn *websocket.Conn, wantType string, timeout time.Duration) wsFrame {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		frame := readFrame(t, conn, time.Until(deadline))
		if frame.Type == wantType {
			return frame
		}
	}
	t.Fatalf("no %q frame before timeout", wantType)
	return wsFrame{}
}

func TestWSHandler_InitialSnapshot(t *testing.T) {
	env := newWSTestEnv(t, time.Hour, time.Hour)
	conn := env.dial(t)

	frame := readFrame(t, conn, 2*time.Second)
	if frame.Type != "dashboard_update" {
		t.Errorf("first frame type = %q, want dashboard_update", frame.Type)
	}

	data, ok := frame.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("frame data is %T, want object", frame.Data)
	}
	for _, key := range []string{"incidents", "activeThreats", "systemMetrics", "insights", "flStatus", "systemHealth"} {
		if _, ok := data[key]; !ok {
			t.Errorf("snapshot missing %q", key)
		}
	}
}

func TestWSHandler_PeriodicBroadcast(t *testing.T) {
	env := newWSTestEnv(t, 100*time.Millisecond, time.Hour)
	conn := env.dial(t)

	// Greeting plus at least two ticker broadcasts
	for i := 0; i < 3; i++ {
		frame := readFrame(t, conn, 2*time.Second)
		if frame.Type != "dashboard_update" {
			t.Fatalf("frame %d type = %q, want dashboard_update", i, frame.Type)
		}
	}
}

func TestWSHandler_UnknownTypeKeepsConnection(t *testing.T) {
	env := newWSTestEnv(t, time.Hour, time.Hour)
	conn := env.dial(t)

	readFrame(t, conn, 2*time.Second) // greeting

	if err := conn.WriteJSON(map[string]string{"type": "launch_missiles"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	frame := awaitFrame(t, conn, "error", 2*time.Second)
	data, _ := frame.Data.(map[string]interface{})
	msg, _ := data["message"].(string)
	if !strings.Contains(msg, "launch_missiles") {
		t.Errorf("error message = %q, want the offending type named", msg)
	}

	// The connection is still usable
	if err := conn.WriteJSON(map[string]string{"type": "ping"}); err != nil {
		t.Fatalf("WriteJSON() after error = %v", err)
	}
	awaitFrame(t, conn, "pong", 2*time.Second)
}

func TestWSHandler_MalformedJSONKeepsConnection(t *testing.T) {
	env := newWSTestEnv(t, time.Hour, time.Hour)
	conn := env.dial(t)

	readFrame(t, conn, 2*time.Second) // greeting

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}
	awaitFrame(t, conn, "error", 2*time.Second)

	if err := conn.WriteJSON(map[string]string{"type": "ping"}); err != nil {
		t.Fatalf("WriteJSON() after malformed frame = %v", err)
	}
	awaitFrame(t, conn, "pong", 2*time.Second)
}

func TestWSHandler_MitigateThreatCommand(t *testing.T) {
	env := newWSTestEnv(t, time.Hour, time.Hour)

	id, err := env.threats.Create(context.Background(), &threat.Threat{
		Name: "Beaconing", Type: threat.TypeMalware, Severity: threat.SeverityCritical,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	conn := env.dial(t)
	readFrame(t, conn, 2*time.Second) // greeting

	if err := conn.WriteJSON(map[string]interface{}{
		"type":    "mitigate_threat",
		"payload": map[string]int64{"id": id},
	}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	awaitFrame(t, conn, "threat_mitigated", 2*time.Second)

	thr, err := env.threats.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if thr.IsActive {
		t.Error("threat still active after mitigate_threat command")
	}
}

func TestWSHandler_TrainingCommands(t *testing.T) {
	env := newWSTestEnv(t, time.Hour, time.Hour)
	conn := env.dial(t)
	readFrame(t, conn, 2*time.Second) // greeting

	if err := conn.WriteJSON(map[string]string{"type": "pause_training"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	frame := awaitFrame(t, conn, "fl_status", 2*time.Second)

	b, _ := json.Marshal(frame.Data)
	var snap simulator.FLSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		t.Fatalf("invalid fl_status payload: %v", err)
	}
	if snap.Status != simulator.FLStatusPaused {
		t.Errorf("status after pause = %v, want paused", snap.Status)
	}

	if err := conn.WriteJSON(map[string]string{"type": "start_training"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	frame = awaitFrame(t, conn, "fl_status", 2*time.Second)
	b, _ = json.Marshal(frame.Data)
	if err := json.Unmarshal(b, &snap); err != nil {
		t.Fatalf("invalid fl_status payload: %v", err)
	}
	if snap.Status != simulator.FLStatusActive {
		t.Errorf("status after start = %v, want active", snap.Status)
	}
}

// Subscribing narrows delivery to the chosen channels
func TestWSHandler_SubscriptionFiltering(t *testing.T) {
	env := newWSTestEnv(t, time.Hour, time.Hour)
	conn := env.dial(t)
	readFrame(t, conn, 2*time.Second) // greeting

	if err := conn.WriteJSON(map[string]interface{}{
		"type":    "subscribe",
		"payload": map[string]string{"channel": "new_incident"},
	}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	awaitFrame(t, conn, "subscription_update", 2*time.Second)

	env.hub.Publish("fl_round_complete", map[string]string{"x": "y"})
	env.hub.Publish("new_incident", map[string]string{"title": "test"})

	frame := readFrame(t, conn, 2*time.Second)
	if frame.Type != "new_incident" {
		t.Errorf("delivered frame type = %q, want new_incident only", frame.Type)
	}
}

func TestWSHandler_LivenessSweep(t *testing.T) {
	env := newWSTestEnv(t, time.Hour, 150*time.Millisecond)
	conn := env.dial(t)

	// Suppress the client's automatic pong replies so the sweep sees a
	// dead connection
	conn.SetPongHandler(func(string) error { return nil })
	conn.SetPingHandler(func(string) error { return nil })

	readFrame(t, conn, 2*time.Second) // greeting

	// First sweep consumes the initial alive mark and pings; second sweep
	// finds no pong and terminates the client. A single blocking read is
	// required here: gorilla marks the connection failed after any read
	// error, so the read must outlast both sweep intervals.
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		_, _, err := conn.ReadMessage()
		if err == nil {
			continue // broadcast frame, keep waiting for the close
		}
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			t.Error("unresponsive client was not terminated by the liveness sweep")
		}
		return
	}
}

// A connection arriving after the hub loop has stopped must be refused,
// not parked on the register channel forever
func TestWSHandler_ConnectAfterShutdown(t *testing.T) {
	env := newWSTestEnv(t, time.Hour, time.Hour)
	env.cancel()
	<-env.hub.done

	conn := env.dial(t)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	if err == nil {
		t.Fatal("received a frame after hub shutdown")
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		t.Error("connection left hanging after hub shutdown")
	}
}

func TestWSHandler_ShutdownReleasesPumps(t *testing.T) {
	env := newWSTestEnv(t, time.Hour, time.Hour)
	base := runtime.NumGoroutine()

	conn := env.dial(t)
	readFrame(t, conn, 2*time.Second) // greeting

	env.cancel()
	<-env.hub.done

	// Shutdown closes the client's send queue, which ends the write pump
	// and in turn fails the server-side read. Drain until the close
	// reaches us, then check both pumps actually exited.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	conn.Close()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= base {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("goroutines = %d after shutdown, want at most the %d we started with", runtime.NumGoroutine(), base)
}
