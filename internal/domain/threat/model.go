package threat

import "time"

// Threat represents a detected or reported network threat
type Threat struct {
	ID          int64     `json:"id"`
	ThreatID    string    `json:"threat_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Severity    string    `json:"severity"`
	Description string    `json:"description,omitempty"`
	SourceIP    string    `json:"source_ip,omitempty"`
	TargetIP    string    `json:"target_ip,omitempty"`
	Confidence  float64   `json:"confidence"`
	IsActive    bool      `json:"is_active"`
	Metadata    string    `json:"metadata,omitempty"`
	DetectedAt  time.Time `json:"detected_at"`
}

// Threat types
const (
	TypeMalware        = "malware"
	TypeDoS            = "dos"
	TypeProbe          = "probe"
	TypeIntrusion      = "intrusion"
	TypeNetworkAnomaly = "network_anomaly"
)

// Threat severity levels
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// Filter contains threat filtering options
type Filter struct {
	Type       string
	Severity   string
	ActiveOnly bool
}
