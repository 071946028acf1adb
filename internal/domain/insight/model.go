package insight

import "time"

// Insight represents an AI-generated analysis summary. Append-mostly.
type Insight struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	Confidence  float64   `json:"confidence"`
	Data        string    `json:"data,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Insight types
const (
	TypeAnomalyDetection = "anomaly_detection"
	TypeTrendAnalysis    = "trend_analysis"
	TypeRiskAssessment   = "risk_assessment"
)
