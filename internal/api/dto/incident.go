package dto

import "time"

// IncidentDTO represents an incident in API responses
// Uses camelCase for frontend compatibility
type IncidentDTO struct {
	ID          int64     `json:"id"`
	IncidentID  string    `json:"incidentId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	AssigneeID  *int64    `json:"assigneeId,omitempty"`
	RiskScore   float64   `json:"riskScore"`
	Metadata    string    `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateIncidentRequest represents an incident creation request
type CreateIncidentRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Severity    string  `json:"severity" validate:"required,oneof=critical high medium low"`
	Type        string  `json:"type" validate:"required"`
	RiskScore   float64 `json:"riskScore,omitempty" validate:"omitempty,gte=0,lte=100"`
	Metadata    string  `json:"metadata,omitempty"`
}

// PatchIncidentRequest represents a partial incident update
type PatchIncidentRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Severity    *string  `json:"severity,omitempty" validate:"omitempty,oneof=critical high medium low"`
	Status      *string  `json:"status,omitempty" validate:"omitempty,oneof=open investigating analyzing resolved closed"`
	AssigneeID  *int64   `json:"assigneeId,omitempty"`
	RiskScore   *float64 `json:"riskScore,omitempty" validate:"omitempty,gte=0,lte=100"`
}
