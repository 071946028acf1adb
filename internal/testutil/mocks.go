package testutil

import (
	"context"
	"time"

	"github.com/agisfl/agisfl/internal/domain/attackpath"
	"github.com/agisfl/agisfl/internal/domain/incident"
	"github.com/agisfl/agisfl/internal/domain/insight"
	"github.com/agisfl/agisfl/internal/domain/sysmetric"
	"github.com/agisfl/agisfl/internal/domain/threat"
	"github.com/agisfl/agisfl/internal/domain/user"
	"github.com/agisfl/agisfl/internal/pkg/errors"
)

// MockIncidentRepository is a map-backed incident.Repository for tests
type MockIncidentRepository struct {
	Incidents map[int64]*incident.Incident
	NextID    int64

	CreateError error
	GetError    error
	UpdateError error
	ListError   error
}

func NewMockIncidentRepository() *MockIncidentRepository {
	return &MockIncidentRepository{
		Incidents: make(map[int64]*incident.Incident),
		NextID:    1,
	}
}

func (m *MockIncidentRepository) Create(ctx context.Context, inc *incident.Incident) (int64, error) {
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	// Like the SQL drivers, return the row ID without touching the model
	id := m.NextID
	m.NextID++
	cp := *inc
	cp.ID = id
	m.Incidents[id] = &cp
	return id, nil
}

func (m *MockIncidentRepository) GetByID(ctx context.Context, id int64) (*incident.Incident, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	inc, ok := m.Incidents[id]
	if !ok {
		return nil, errors.NotFound("Incident")
	}
	cp := *inc
	return &cp, nil
}

func (m *MockIncidentRepository) Update(ctx context.Context, inc *incident.Incident) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Incidents[inc.ID]; !ok {
		return errors.NotFound("Incident")
	}
	cp := *inc
	m.Incidents[inc.ID] = &cp
	return nil
}

func (m *MockIncidentRepository) List(ctx context.Context, filter incident.Filter, limit, offset int) ([]*incident.Incident, int64, error) {
	if m.ListError != nil {
		return nil, 0, m.ListError
	}
	var out []*incident.Incident
	for id := m.NextID - 1; id >= 1; id-- {
		inc, ok := m.Incidents[id]
		if !ok {
			continue
		}
		if filter.Severity != "" && inc.Severity != filter.Severity {
			continue
		}
		if filter.Status != "" && inc.Status != filter.Status {
			continue
		}
		if filter.Type != "" && inc.Type != filter.Type {
			continue
		}
		cp := *inc
		out = append(out, &cp)
	}
	total := int64(len(out))
	if offset >= len(out) {
		return []*incident.Incident{}, total, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (m *MockIncidentRepository) CountBySeverity(ctx context.Context) (map[string]int, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	counts := make(map[string]int)
	for _, inc := range m.Incidents {
		counts[inc.Severity]++
	}
	return counts, nil
}

// MockThreatRepository is a map-backed threat.Repository for tests
type MockThreatRepository struct {
	Threats map[int64]*threat.Threat
	NextID  int64

	CreateError error
	GetError    error
	UpdateError error
	ListError   error
}

func NewMockThreatRepository() *MockThreatRepository {
	return &MockThreatRepository{
		Threats: make(map[int64]*threat.Threat),
		NextID:  1,
	}
}

func (m *MockThreatRepository) Create(ctx context.Context, t *threat.Threat) (int64, error) {
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	id := m.NextID
	m.NextID++
	cp := *t
	cp.ID = id
	m.Threats[id] = &cp
	return id, nil
}

func (m *MockThreatRepository) GetByID(ctx context.Context, id int64) (*threat.Threat, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	t, ok := m.Threats[id]
	if !ok {
		return nil, errors.NotFound("Threat")
	}
	cp := *t
	return &cp, nil
}

func (m *MockThreatRepository) Update(ctx context.Context, t *threat.Threat) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	if _, ok := m.Threats[t.ID]; !ok {
		return errors.NotFound("Threat")
	}
	cp := *t
	m.Threats[t.ID] = &cp
	return nil
}

func (m *MockThreatRepository) List(ctx context.Context, filter threat.Filter, limit, offset int) ([]*threat.Threat, int64, error) {
	if m.ListError != nil {
		return nil, 0, m.ListError
	}
	var out []*threat.Threat
	for id := m.NextID - 1; id >= 1; id-- {
		t, ok := m.Threats[id]
		if !ok {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Severity != "" && t.Severity != filter.Severity {
			continue
		}
		if filter.ActiveOnly && !t.IsActive {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	total := int64(len(out))
	if offset >= len(out) {
		return []*threat.Threat{}, total, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (m *MockThreatRepository) CountActiveBySeverity(ctx context.Context) (map[string]int, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	counts := make(map[string]int)
	for _, t := range m.Threats {
		if t.IsActive {
			counts[t.Severity]++
		}
	}
	return counts, nil
}

func (m *MockThreatRepository) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	for id, t := range m.Threats {
		if !t.IsActive && t.DetectedAt.Before(cutoff) {
			delete(m.Threats, id)
			removed++
		}
	}
	return removed, nil
}

// MockSysMetricRepository is a slice-backed sysmetric.Repository for tests
type MockSysMetricRepository struct {
	Metrics []*sysmetric.Metric
	NextID  int64

	CreateError error
	ListError   error
}

func NewMockSysMetricRepository() *MockSysMetricRepository {
	return &MockSysMetricRepository{NextID: 1}
}

func (m *MockSysMetricRepository) Create(ctx context.Context, metric *sysmetric.Metric) (int64, error) {
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	id := m.NextID
	m.NextID++
	cp := *metric
	cp.ID = id
	m.Metrics = append(m.Metrics, &cp)
	return id, nil
}

func (m *MockSysMetricRepository) Latest(ctx context.Context) ([]*sysmetric.Metric, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	latest := make(map[string]*sysmetric.Metric)
	for _, metric := range m.Metrics {
		key := metric.MetricType + "/" + metric.Component
		latest[key] = metric
	}
	out := make([]*sysmetric.Metric, 0, len(latest))
	for _, metric := range latest {
		cp := *metric
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockSysMetricRepository) History(ctx context.Context, metricType string, since time.Time) ([]*sysmetric.Metric, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var out []*sysmetric.Metric
	for _, metric := range m.Metrics {
		if metric.MetricType == metricType && !metric.Timestamp.Before(since) {
			cp := *metric
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockSysMetricRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var kept []*sysmetric.Metric
	var removed int64
	for _, metric := range m.Metrics {
		if metric.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, metric)
	}
	m.Metrics = kept
	return removed, nil
}

// MockInsightRepository is a slice-backed insight.Repository for tests
type MockInsightRepository struct {
	Insights []*insight.Insight
	NextID   int64

	CreateError error
	ListError   error
	UpdateError error
}

func NewMockInsightRepository() *MockInsightRepository {
	return &MockInsightRepository{NextID: 1}
}

func (m *MockInsightRepository) Create(ctx context.Context, ins *insight.Insight) (int64, error) {
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	id := m.NextID
	m.NextID++
	cp := *ins
	cp.ID = id
	m.Insights = append(m.Insights, &cp)
	return id, nil
}

func (m *MockInsightRepository) ListActive(ctx context.Context, limit int) ([]*insight.Insight, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var out []*insight.Insight
	for i := len(m.Insights) - 1; i >= 0; i-- {
		if !m.Insights[i].IsActive {
			continue
		}
		cp := *m.Insights[i]
		out = append(out, &cp)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *MockInsightRepository) Deactivate(ctx context.Context, id int64) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	for _, ins := range m.Insights {
		if ins.ID == id {
			ins.IsActive = false
			return nil
		}
	}
	return errors.NotFound("Insight")
}

// MockAttackPathRepository is a slice-backed attackpath.Repository for tests
type MockAttackPathRepository struct {
	Paths  []*attackpath.AttackPath
	NextID int64

	CreateError error
	GetError    error
	ListError   error
}

func NewMockAttackPathRepository() *MockAttackPathRepository {
	return &MockAttackPathRepository{NextID: 1}
}

func (m *MockAttackPathRepository) Create(ctx context.Context, p *attackpath.AttackPath) (int64, error) {
	if m.CreateError != nil {
		return 0, m.CreateError
	}
	id := m.NextID
	m.NextID++
	cp := *p
	cp.ID = id
	m.Paths = append(m.Paths, &cp)
	return id, nil
}

func (m *MockAttackPathRepository) GetByID(ctx context.Context, id int64) (*attackpath.AttackPath, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, p := range m.Paths {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errors.NotFound("Attack path")
}

func (m *MockAttackPathRepository) List(ctx context.Context, limit int) ([]*attackpath.AttackPath, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	var out []*attackpath.AttackPath
	for i := len(m.Paths) - 1; i >= 0; i-- {
		cp := *m.Paths[i]
		out = append(out, &cp)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// MockUserRepository is a map-backed user.Repository for tests
type MockUserRepository struct {
	Users      map[int64]*user.User
	EmailIndex map[string]int64
	NextID     int64

	CreateError error
	GetError    error
	UpdateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[int64]*user.User),
		EmailIndex: make(map[string]int64),
		NextID:     1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, exists := m.EmailIndex[u.Email]; exists {
		return errors.Conflict("Email already registered")
	}
	u.ID = m.NextID
	m.NextID++
	cp := *u
	m.Users[u.ID] = &cp
	m.EmailIndex[u.Email] = u.ID
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	id, ok := m.EmailIndex[email]
	if !ok {
		return nil, errors.NotFound("User")
	}
	cp := *m.Users[id]
	return &cp, nil
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	old, ok := m.Users[u.ID]
	if !ok {
		return errors.NotFound("User")
	}
	if old.Email != u.Email {
		delete(m.EmailIndex, old.Email)
		m.EmailIndex[u.Email] = u.ID
	}
	cp := *u
	m.Users[u.ID] = &cp
	return nil
}
