package simulator

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/agisfl/agisfl/internal/domain/sysmetric"
	"github.com/agisfl/agisfl/internal/pkg/logger"
)

// MetricsGenerator synthesizes cpu, memory and network samples on a fixed
// interval. Values combine a slow sinusoidal drift with uniform noise so
// charts look alive without being pure static.
type MetricsGenerator struct {
	metrics  sysmetric.Service
	interval time.Duration
	rng      *rand.Rand
	logger   *logger.Logger
	started  time.Time
}

// NewMetricsGenerator creates a metrics generator
func NewMetricsGenerator(metrics sysmetric.Service, interval time.Duration, log *logger.Logger) *MetricsGenerator {
	return &MetricsGenerator{
		metrics:  metrics,
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   log,
		started:  time.Now(),
	}
}

// Start begins the generation loop. Blocks until ctx is cancelled.
func (g *MetricsGenerator) Start(ctx context.Context) {
	g.logger.Info("Starting metrics generator")

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	g.tick(ctx)

	for {
		select {
		case <-ticker.C:
			g.tick(ctx)
		case <-ctx.Done():
			g.logger.Info("Metrics generator stopped")
			return
		}
	}
}

func (g *MetricsGenerator) tick(ctx context.Context) {
	elapsed := time.Since(g.started).Seconds()

	samples := []*sysmetric.Metric{
		{
			MetricType: sysmetric.TypeCPU,
			Component:  "system",
			Value:      g.synthesize(35, 15, elapsed, 120),
			Unit:       "percent",
		},
		{
			MetricType: sysmetric.TypeMemory,
			Component:  "system",
			Value:      g.synthesize(55, 10, elapsed, 300),
			Unit:       "percent",
		},
		{
			MetricType: sysmetric.TypeNetwork,
			Component:  "eth0",
			Value:      g.synthesize(25, 20, elapsed, 90),
			Unit:       "mbps",
		},
	}

	for _, m := range samples {
		if _, err := g.metrics.Record(ctx, m); err != nil {
			g.logger.ErrorWithErr(err, "Failed to record simulated metric")
		}
	}
}

// synthesize returns base plus a sine wave of the given period plus
// uniform noise, clamped to [0, 100].
func (g *MetricsGenerator) synthesize(base, amplitude, elapsed, periodSec float64) float64 {
	wave := amplitude * math.Sin(2*math.Pi*elapsed/periodSec)
	noise := (g.rng.Float64() - 0.5) * amplitude
	return clamp(base+wave+noise, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
