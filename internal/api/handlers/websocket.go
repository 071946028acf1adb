package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/agisfl/agisfl/internal/domain/incident"
	"github.com/agisfl/agisfl/internal/domain/threat"
	"github.com/agisfl/agisfl/internal/pkg/logger"
	"github.com/agisfl/agisfl/internal/simulator"
)

const (
	// writeWait bounds a single frame write
	writeWait = 10 * time.Second
	// sendBufferSize is the per-client outbound queue; a full queue drops
	// the frame rather than blocking the hub
	sendBufferSize = 32
	// maxInboundBytes bounds inbound command frames
	maxInboundBytes = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard frontend may be served from a different origin in
	// development; auth happens at the HTTP layer before upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// inboundFrame is the client-to-server message envelope
type inboundFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSHandler upgrades connections and dispatches inbound commands
type WSHandler struct {
	hub         *Hub
	incidents   incident.Service
	threats     threat.Service
	coordinator *simulator.FLCoordinator
	logger      *logger.Logger
}

// NewWSHandler creates a WebSocket handler
func NewWSHandler(
	hub *Hub,
	incidents incident.Service,
	threats threat.Service,
	coordinator *simulator.FLCoordinator,
	log *logger.Logger,
) *WSHandler {
	return &WSHandler{
		hub:         hub,
		incidents:   incidents,
		threats:     threats,
		coordinator: coordinator,
		logger:      log,
	}
}

// Serve upgrades the request and runs the connection until it closes
// @Summary Dashboard WebSocket
// @Description Live dashboard updates and commands over a WebSocket
// @Tags WebSocket
// @Router /ws [get]
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.ErrorWithErr(err, "WebSocket upgrade failed")
		return
	}

	c := &wsClient{
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		handler:  h,
		subs:     make(map[string]bool),
		pongSeen: true,
	}

	select {
	case h.hub.register <- c:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// wsClient is one live WebSocket connection. The hub loop and the two
// pumps touch shared fields only under mu.
type wsClient struct {
	conn    *websocket.Conn
	send    chan []byte
	handler *WSHandler

	mu       sync.Mutex
	subs     map[string]bool
	pongSeen bool
	closed   bool
}

func (c *wsClient) remoteAddr() string {
	return c.conn.RemoteAddr().String()
}

// enqueue queues a frame for delivery, dropping it when the buffer is
// full or the connection is being torn down
func (c *wsClient) enqueue(frame []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- frame:
	default:
	}
}

// closeSend ends the write pump; safe to call more than once
func (c *wsClient) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// subscribedTo reports whether the client wants the channel. An empty
// subscription set means everything.
func (c *wsClient) subscribedTo(channel string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.subs) == 0 {
		return true
	}
	return c.subs[channel]
}

// consumePong returns whether a pong arrived since the last call and
// resets the flag
func (c *wsClient) consumePong() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	seen := c.pongSeen
	c.pongSeen = false
	return seen
}

// ping sends a control ping; delivery failures surface in the read pump
func (c *wsClient) ping() {
	_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (c *wsClient) writePump() {
	defer c.conn.Close()

	for frame := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}

	// Hub dropped us; tell the peer before closing.
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (c *wsClient) readPump() {
	h := c.handler
	defer func() {
		select {
		case h.hub.unregister <- c:
		case <-h.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxInboundBytes)
	c.conn.SetPongHandler(func(string) error {
		c.mu.Lock()
		c.pongSeen = true
		c.mu.Unlock()
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		// Any inbound traffic proves the peer is alive.
		c.mu.Lock()
		c.pongSeen = true
		c.mu.Unlock()

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.enqueue(encodeFrame("error", map[string]string{"message": "malformed message"}))
			continue
		}

		h.dispatch(c, frame)
	}
}

// dispatch handles one inbound command. Unknown types get an error reply
// and the connection stays open.
func (h *WSHandler) dispatch(c *wsClient, frame inboundFrame) {
	ctx := context.Background()

	switch frame.Type {
	case "ping":
		c.enqueue(encodeFrame("pong", nil))

	case "subscribe", "unsubscribe":
		var payload struct {
			Channel string `json:"channel"`
		}
		if err := json.Unmarshal(frame.Payload, &payload); err != nil || payload.Channel == "" {
			c.enqueue(encodeFrame("error", map[string]string{"message": "channel required"}))
			return
		}
		c.mu.Lock()
		if frame.Type == "subscribe" {
			c.subs[payload.Channel] = true
		} else {
			delete(c.subs, payload.Channel)
		}
		c.mu.Unlock()
		c.enqueue(encodeFrame("subscription_update", map[string]string{"channel": payload.Channel, "action": frame.Type}))

	case "acknowledge_alert":
		var payload struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(frame.Payload, &payload); err != nil || payload.ID <= 0 {
			c.enqueue(encodeFrame("error", map[string]string{"message": "id required"}))
			return
		}
		if err := h.incidents.Acknowledge(ctx, payload.ID); err != nil {
			c.enqueue(encodeFrame("error", map[string]string{"message": "failed to acknowledge incident"}))
			return
		}
		c.enqueue(encodeFrame("alert_acknowledged", map[string]int64{"id": payload.ID}))

	case "mitigate_threat":
		var payload struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(frame.Payload, &payload); err != nil || payload.ID <= 0 {
			c.enqueue(encodeFrame("error", map[string]string{"message": "id required"}))
			return
		}
		t, err := h.threats.Mitigate(ctx, payload.ID)
		if err != nil {
			c.enqueue(encodeFrame("error", map[string]string{"message": "failed to mitigate threat"}))
			return
		}
		c.enqueue(encodeFrame("threat_mitigated", t))

	case "start_training":
		h.coordinator.Resume()
		c.enqueue(encodeFrame("fl_status", h.coordinator.Snapshot()))

	case "pause_training":
		h.coordinator.Pause()
		c.enqueue(encodeFrame("fl_status", h.coordinator.Snapshot()))

	case "reset_training":
		h.coordinator.Reset()
		c.enqueue(encodeFrame("fl_status", h.coordinator.Snapshot()))

	default:
		c.enqueue(encodeFrame("error", map[string]string{"message": "unknown message type: " + frame.Type}))
	}
}
