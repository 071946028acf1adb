package incident

import "time"

// Incident represents a security incident tracked by the platform
type Incident struct {
	ID          int64     `json:"id"`
	IncidentID  string    `json:"incident_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	AssigneeID  *int64    `json:"assignee_id,omitempty"`
	RiskScore   float64   `json:"risk_score"`
	Metadata    string    `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Incident severity levels
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// Incident statuses. The progression open -> investigating -> analyzing ->
// resolved -> closed is conventional, not machine-enforced.
const (
	StatusOpen          = "open"
	StatusInvestigating = "investigating"
	StatusAnalyzing     = "analyzing"
	StatusResolved      = "resolved"
	StatusClosed        = "closed"
)

// Filter contains incident filtering options
type Filter struct {
	Severity string
	Status   string
	Type     string
}

// Patch contains optional incident field updates
type Patch struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Severity    *string  `json:"severity,omitempty"`
	Status      *string  `json:"status,omitempty"`
	AssigneeID  *int64   `json:"assignee_id,omitempty"`
	RiskScore   *float64 `json:"risk_score,omitempty"`
}
