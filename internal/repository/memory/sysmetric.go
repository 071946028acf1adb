package memory

import (
	"context"
	"sync"
	"time"

	"github.com/agisfl/agisfl/internal/domain/sysmetric"
)

// SysMetricRepository is an in-memory metric store for demo deployments.
type SysMetricRepository struct {
	mu      sync.RWMutex
	metrics []*sysmetric.Metric
	nextID  int64
}

func NewSysMetricRepository() sysmetric.Repository {
	return &SysMetricRepository{nextID: 1}
}

func (r *SysMetricRepository) Create(ctx context.Context, m *sysmetric.Metric) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = r.nextID
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
	r.nextID++

	cp := *m
	r.metrics = append(r.metrics, &cp)
	return m.ID, nil
}

func (r *SysMetricRepository) Latest(ctx context.Context) ([]*sysmetric.Metric, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type key struct{ metricType, component string }
	latest := make(map[key]*sysmetric.Metric)
	for _, m := range r.metrics {
		k := key{m.MetricType, m.Component}
		if prev, ok := latest[k]; !ok || m.ID > prev.ID {
			latest[k] = m
		}
	}

	out := make([]*sysmetric.Metric, 0, len(latest))
	for _, m := range latest {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *SysMetricRepository) History(ctx context.Context, metricType string, since time.Time) ([]*sysmetric.Metric, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*sysmetric.Metric, 0, len(r.metrics))
	for _, m := range r.metrics {
		if m.MetricType == metricType && !m.Timestamp.Before(since) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *SysMetricRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.metrics[:0]
	var deleted int64
	for _, m := range r.metrics {
		if m.Timestamp.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	r.metrics = kept
	return deleted, nil
}
