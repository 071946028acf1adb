package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/agisfl/agisfl/internal/domain/incident"
	"github.com/agisfl/agisfl/internal/domain/insight"
	"github.com/agisfl/agisfl/internal/domain/threat"
	"github.com/agisfl/agisfl/internal/pkg/logger"
)

// anomalyProbability is the per-tick chance of a simulated detection.
const anomalyProbability = 0.15

// Severity thresholds on the synthetic anomaly score. More negative
// scores are more anomalous.
const (
	scoreCritical = -0.5
	scoreHigh     = -0.3
	scoreMedium   = -0.1
)

// insightBatchSize is how many detections accumulate before an insight
// summary row is written.
const insightBatchSize = 5

// ThreatDetector draws simulated anomaly events and persists them as
// threats. Critical and high detections also open an incident and push a
// new_incident event to the hub.
type ThreatDetector struct {
	threats   threat.Service
	incidents incident.Service
	insights  insight.Service
	publisher Publisher
	profiles  []AttackProfile
	interval  time.Duration
	logger    *logger.Logger

	mu       sync.Mutex
	rng      *rand.Rand
	batch    []string
	detected int64
}

// NewThreatDetector creates a threat detector
func NewThreatDetector(
	threats threat.Service,
	incidents incident.Service,
	insights insight.Service,
	publisher Publisher,
	profiles []AttackProfile,
	interval time.Duration,
	log *logger.Logger,
) *ThreatDetector {
	if publisher == nil {
		publisher = NopPublisher()
	}
	return &ThreatDetector{
		threats:   threats,
		incidents: incidents,
		insights:  insights,
		publisher: publisher,
		profiles:  profiles,
		interval:  interval,
		logger:    log,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start begins the detection loop. Blocks until ctx is cancelled.
func (d *ThreatDetector) Start(ctx context.Context) {
	d.logger.Info("Starting threat detector")

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.tick(ctx)
		case <-ctx.Done():
			d.logger.Info("Threat detector stopped")
			return
		}
	}
}

// DetectionsTotal returns the number of simulated detections so far.
func (d *ThreatDetector) DetectionsTotal() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detected
}

func (d *ThreatDetector) tick(ctx context.Context) {
	d.mu.Lock()
	roll := d.rng.Float64()
	if roll >= anomalyProbability {
		d.mu.Unlock()
		return
	}

	profile := pickProfile(d.rng, d.profiles)
	score := -d.rng.Float64() // in (-1, 0]
	confidence := profile.MinConfidence + d.rng.Float64()*(profile.MaxConfidence-profile.MinConfidence)
	sourceIP := randomIP(d.rng, profile.SourceSubnets)
	targetIP := fmt.Sprintf("10.1.0.%d", 1+d.rng.Intn(254))
	d.detected++
	d.batch = append(d.batch, profile.Name)
	flush := len(d.batch) >= insightBatchSize
	var batchCopy []string
	if flush {
		batchCopy = d.batch
		d.batch = nil
	}
	d.mu.Unlock()

	severity := severityForScore(score)
	meta, _ := json.Marshal(map[string]interface{}{
		"profile":       profile.Name,
		"anomaly_score": score,
	})

	t := &threat.Threat{
		Name:        profile.Title,
		Type:        profile.ThreatType,
		Severity:    severity,
		Description: profile.Description,
		SourceIP:    sourceIP,
		TargetIP:    targetIP,
		Confidence:  confidence,
		Metadata:    string(meta),
		DetectedAt:  time.Now(),
	}

	if _, err := d.threats.Create(ctx, t); err != nil {
		d.logger.ErrorWithErr(err, "Failed to persist simulated threat")
		return
	}

	if severity == threat.SeverityCritical || severity == threat.SeverityHigh {
		d.openIncident(ctx, t)
	}

	if flush {
		d.writeInsight(ctx, batchCopy)
	}
}

func (d *ThreatDetector) openIncident(ctx context.Context, t *threat.Threat) {
	inc := &incident.Incident{
		Title:       t.Name,
		Description: fmt.Sprintf("%s from %s targeting %s", t.Description, t.SourceIP, t.TargetIP),
		Severity:    t.Severity,
		Type:        t.Type,
		RiskScore:   t.Confidence * 100,
		Metadata:    t.Metadata,
	}

	if _, err := d.incidents.Create(ctx, inc); err != nil {
		d.logger.ErrorWithErr(err, "Failed to open incident for detection")
		return
	}

	d.publisher.Publish("new_incident", inc)
}

func (d *ThreatDetector) writeInsight(ctx context.Context, batch []string) {
	counts := make(map[string]int, len(batch))
	for _, name := range batch {
		counts[name]++
	}
	data, _ := json.Marshal(counts)

	ins := &insight.Insight{
		Type:        insight.TypeAnomalyDetection,
		Title:       fmt.Sprintf("Anomaly pattern across %d recent detections", len(batch)),
		Description: "Recurring attack activity observed across monitored traffic profiles",
		Severity:    threat.SeverityMedium,
		Confidence:  0.8,
		Data:        string(data),
	}

	if _, err := d.insights.Create(ctx, ins); err != nil {
		d.logger.ErrorWithErr(err, "Failed to write detection insight")
	}
}

// severityForScore maps a synthetic anomaly score to a severity label.
func severityForScore(score float64) string {
	switch {
	case score < scoreCritical:
		return threat.SeverityCritical
	case score < scoreHigh:
		return threat.SeverityHigh
	case score < scoreMedium:
		return threat.SeverityMedium
	default:
		return threat.SeverityLow
	}
}
