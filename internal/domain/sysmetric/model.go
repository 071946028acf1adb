package sysmetric

import "time"

// Metric represents a single system metric sample. Append-only.
type Metric struct {
	ID         int64     `json:"id"`
	MetricType string    `json:"metric_type"`
	Component  string    `json:"component"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}

// Metric types
const (
	TypeCPU     = "cpu"
	TypeMemory  = "memory"
	TypeNetwork = "network"
)

// Status labels derived from the sampled value
const (
	StatusNormal   = "normal"
	StatusElevated = "elevated"
	StatusCritical = "critical"
)
