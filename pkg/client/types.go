package client

import (
	"encoding/json"
	"time"
)

// ListOptions contains common pagination options
type ListOptions struct {
	Page     int
	PageSize int
}

// Page describes the pagination window of a list response
type Page struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// paginated mirrors the server's paginated list payload
type paginated struct {
	Data json.RawMessage `json:"data"`
	Page
}

// User represents a platform user
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role"`
}

// Incident represents a security incident
type Incident struct {
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

// Threat represents a detected threat
type Threat struct {
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

// SystemMetric represents one telemetry sample
type SystemMetric struct {
	ID         int64     `json:"id"`
	MetricType string    `json:"metricType"`
	Component  string    `json:"component"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}

// SystemHealth represents simulated platform component health
type SystemHealth struct {
	Components    map[string]float64 `json:"components"`
	UptimeSeconds int64              `json:"uptimeSeconds"`
	ProcessCount  int                `json:"processCount"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// Insight represents an AI-generated insight
type Insight struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	Confidence  float64   `json:"confidence"`
	Data        string    `json:"data,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AttackPath represents a potential attack path through the monitored
// environment. Nodes and edges are opaque JSON documents.
type AttackPath struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Severity   string          `json:"severity"`
	Nodes      json.RawMessage `json:"nodes"`
	Edges      json.RawMessage `json:"edges"`
	Likelihood float64         `json:"likelihood"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// DashboardMetrics aggregates the headline dashboard counters
type DashboardMetrics struct {
	TotalIncidents    int                `json:"totalIncidents"`
	CriticalIncidents int                `json:"criticalIncidents"`
	ActiveThreats     int                `json:"activeThreats"`
	AnomaliesDetected int64              `json:"anomaliesDetected"`
	SystemHealth      map[string]float64 `json:"systemHealth"`
}

// FLNode represents one federated learning participant
type FLNode struct {
	ID        string  `json:"id"`
	Model     string  `json:"model"`
	Accuracy  float64 `json:"accuracy"`
	Samples   int     `json:"samples"`
	LastRound int64   `json:"last_round"`
	Active    bool    `json:"active"`
}

// FLStatus represents the coordinator state
type FLStatus struct {
	Status        string    `json:"status"`
	Round         int64     `json:"round"`
	ModelAccuracy float64   `json:"model_accuracy"`
	Nodes         []FLNode  `json:"nodes"`
	Capabilities  []string  `json:"capabilities"`
	LastTrainedAt time.Time `json:"last_trained_at"`
}

// FLPerformance represents per-node and aggregate accuracy figures
type FLPerformance struct {
	Round         int64              `json:"round"`
	ModelAccuracy float64            `json:"modelAccuracy"`
	NodeAccuracy  map[string]float64 `json:"nodeAccuracy"`
	LastTrainedAt time.Time          `json:"lastTrainedAt"`
}

// HealthStatus represents the service liveness probe response
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}
