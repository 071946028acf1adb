package simulator

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/agisfl/agisfl/internal/pkg/logger"
)

// Component health baselines, in percent. Jitter is applied around these
// every sweep.
var healthBaselines = []struct {
	component string
	baseline  float64
	jitter    float64
}{
	{"fl_ids_engine", 97.8, 2.0},
	{"data_pipeline", 95.5, 2.0},
	{"network_monitoring", 98.9, 1.0},
	{"alerting_system", 99.2, 1.0},
}

// HealthSnapshot is the simulated platform health view.
type HealthSnapshot struct {
	Components    map[string]float64 `json:"components"`
	UptimeSeconds int64              `json:"uptime_seconds"`
	ProcessCount  int                `json:"process_count"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// SystemMonitor publishes simulated platform component health on a fixed
// interval and tracks process uptime.
type SystemMonitor struct {
	interval time.Duration
	logger   *logger.Logger

	mu      sync.RWMutex
	rng     *rand.Rand
	started time.Time
	current HealthSnapshot
}

// NewSystemMonitor creates a system monitor with an initial sweep applied.
func NewSystemMonitor(interval time.Duration, log *logger.Logger) *SystemMonitor {
	m := &SystemMonitor{
		interval: interval,
		logger:   log,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		started:  time.Now(),
	}
	m.sweep()
	return m
}

// Start begins the monitoring loop. Blocks until ctx is cancelled.
func (m *SystemMonitor) Start(ctx context.Context) {
	m.logger.Info("Starting system monitor")

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-ctx.Done():
			m.logger.Info("System monitor stopped")
			return
		}
	}
}

func (m *SystemMonitor) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	components := make(map[string]float64, len(healthBaselines))
	for _, h := range healthBaselines {
		v := h.baseline + (m.rng.Float64()-0.5)*2*h.jitter
		components[h.component] = clamp(v, 0, 100)
	}

	m.current = HealthSnapshot{
		Components:    components,
		UptimeSeconds: int64(time.Since(m.started).Seconds()),
		ProcessCount:  120 + m.rng.Intn(40),
		UpdatedAt:     time.Now(),
	}
}

// Health returns the latest health snapshot.
func (m *SystemMonitor) Health() HealthSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cp := m.current
	cp.Components = make(map[string]float64, len(m.current.Components))
	for k, v := range m.current.Components {
		cp.Components[k] = v
	}
	cp.UptimeSeconds = int64(time.Since(m.started).Seconds())
	return cp
}
