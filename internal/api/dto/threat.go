package dto

import "time"

// ThreatDTO represents a threat in API responses
type ThreatDTO struct {
	ID          int64     `json:"id"`
	ThreatID    string    `json:"threatId"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Severity    string    `json:"severity"`
	Description string    `json:"description,omitempty"`
	SourceIP    string    `json:"sourceIp,omitempty"`
	TargetIP    string    `json:"targetIp,omitempty"`
	Confidence  float64   `json:"confidence"`
	IsActive    bool      `json:"isActive"`
	Metadata    string    `json:"metadata,omitempty"`
	DetectedAt  time.Time `json:"detectedAt"`
}

// CreateThreatRequest represents a threat creation request
type CreateThreatRequest struct {
	Name        string  `json:"name" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=malware dos probe intrusion network_anomaly"`
	Severity    string  `json:"severity" validate:"required,oneof=critical high medium low"`
	Description string  `json:"description,omitempty"`
	SourceIP    string  `json:"sourceIp,omitempty" validate:"omitempty,ip"`
	TargetIP    string  `json:"targetIp,omitempty" validate:"omitempty,ip"`
	Confidence  float64 `json:"confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
	Metadata    string  `json:"metadata,omitempty"`
}
