package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/agisfl/agisfl/internal/domain/incident"
	"github.com/agisfl/agisfl/internal/domain/insight"
	"github.com/agisfl/agisfl/internal/domain/sysmetric"
	"github.com/agisfl/agisfl/internal/domain/threat"
	"github.com/agisfl/agisfl/internal/pkg/logger"
	"github.com/agisfl/agisfl/internal/pkg/metrics"
	"github.com/agisfl/agisfl/internal/simulator"
)

// wsFrame is the outbound WebSocket message envelope
type wsFrame struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// encodeFrame marshals an outbound frame, stamping the current time
func encodeFrame(msgType string, data interface{}) []byte {
	b, err := json.Marshal(wsFrame{Type: msgType, Data: data, Timestamp: time.Now()})
	if err != nil {
		return []byte(`{"type":"error"}`)
	}
	return b
}

// SnapshotSources holds everything the hub reads to assemble a
// dashboard_update frame.
type SnapshotSources struct {
	Incidents   incident.Service
	Threats     threat.Service
	Metrics     sysmetric.Service
	Insights    insight.Service
	Coordinator *simulator.FLCoordinator
	Monitor     *simulator.SystemMonitor
}

// Hub owns the set of live WebSocket clients and the broadcast loop. All
// client set mutations go through the register/unregister channels so the
// loop is the only writer.
type Hub struct {
	sources           SnapshotSources
	broadcastInterval time.Duration
	pingInterval      time.Duration
	logger            *logger.Logger

	register   chan *wsClient
	unregister chan *wsClient
	events     chan []byte
	done       chan struct{}

	clients      map[*wsClient]bool
	lastSnapshot interface{}
}

// NewHub creates a hub. Run must be started before Handler accepts
// connections.
func NewHub(sources SnapshotSources, broadcastInterval, pingInterval time.Duration, log *logger.Logger) *Hub {
	return &Hub{
		sources:           sources,
		broadcastInterval: broadcastInterval,
		pingInterval:      pingInterval,
		logger:            log,
		register:          make(chan *wsClient),
		unregister:        make(chan *wsClient),
		events:            make(chan []byte, 64),
		done:              make(chan struct{}),
		clients:           make(map[*wsClient]bool),
	}
}

// Publish broadcasts a typed event to all subscribed clients. Satisfies
// simulator.Publisher. Non-blocking; events are dropped if the hub is
// saturated.
func (h *Hub) Publish(event string, data interface{}) {
	frame := encodeFrame(event, data)
	select {
	case h.events <- frame:
	default:
		h.logger.Warn("Event channel full, dropping broadcast")
	}
}

// Run drives the hub loop. Blocks until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	broadcast := time.NewTicker(h.broadcastInterval)
	defer broadcast.Stop()
	liveness := time.NewTicker(h.pingInterval)
	defer liveness.Stop()

	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			metrics.SetActiveWSConnections(float64(len(h.clients)))
			// Greet the new client with a snapshot right away.
			c.enqueue(encodeFrame("dashboard_update", h.snapshot(ctx)))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				c.closeSend()
				metrics.SetActiveWSConnections(float64(len(h.clients)))
			}

		case frame := <-h.events:
			h.fanOut(frame, frameType(frame))

		case <-broadcast.C:
			if len(h.clients) == 0 {
				continue
			}
			h.fanOut(encodeFrame("dashboard_update", h.snapshot(ctx)), "dashboard_update")

		case <-liveness.C:
			h.sweep()

		case <-ctx.Done():
			// Closing done releases any pump blocked on register or
			// unregister after the loop stops draining them.
			close(h.done)
			for c := range h.clients {
				delete(h.clients, c)
				c.closeSend()
			}
			metrics.SetActiveWSConnections(0)
			h.logger.Info("WebSocket hub stopped")
			return
		}
	}
}

// fanOut delivers a frame to every client subscribed to its channel
func (h *Hub) fanOut(frame []byte, channel string) {
	for c := range h.clients {
		if !c.subscribedTo(channel) {
			continue
		}
		c.enqueue(frame)
	}
	metrics.RecordWSMessage(channel)
}

// sweep terminates clients that have not ponged since the previous sweep
func (h *Hub) sweep() {
	for c := range h.clients {
		if !c.consumePong() {
			h.logger.WithFields(map[string]interface{}{
				"remote": c.remoteAddr(),
			}).Warn("Terminating unresponsive WebSocket client")
			delete(h.clients, c)
			c.closeSend()
			continue
		}
		c.ping()
	}
	metrics.SetActiveWSConnections(float64(len(h.clients)))
}

// snapshot assembles the dashboard state. A failed storage read logs and
// falls back to the last good snapshot; the next tick retries.
func (h *Hub) snapshot(ctx context.Context) interface{} {
	snap, err := h.assemble(ctx)
	if err != nil {
		h.logger.ErrorWithErr(err, "Snapshot assembly failed, using last good snapshot")
		return h.lastSnapshot
	}
	h.lastSnapshot = snap
	return snap
}

func (h *Hub) assemble(ctx context.Context) (interface{}, error) {
	incidents, _, err := h.sources.Incidents.List(ctx, incident.Filter{}, 10, 0)
	if err != nil {
		return nil, err
	}

	threats, _, err := h.sources.Threats.List(ctx, threat.Filter{ActiveOnly: true}, 10, 0)
	if err != nil {
		return nil, err
	}

	samples, err := h.sources.Metrics.Latest(ctx)
	if err != nil {
		return nil, err
	}

	insights, err := h.sources.Insights.ListActive(ctx, 5)
	if err != nil {
		return nil, err
	}

	snap := map[string]interface{}{
		"incidents":     incidents,
		"activeThreats": threats,
		"systemMetrics": samples,
		"insights":      insights,
	}
	if h.sources.Coordinator != nil {
		snap["flStatus"] = h.sources.Coordinator.Snapshot()
	}
	if h.sources.Monitor != nil {
		snap["systemHealth"] = h.sources.Monitor.Health()
	}
	return snap, nil
}

// frameType pulls the type field back out of an encoded frame for
// subscription matching.
func frameType(frame []byte) string {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(frame, &probe); err != nil {
		return ""
	}
	return probe.Type
}
