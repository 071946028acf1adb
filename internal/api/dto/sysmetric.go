package dto

import "time"

// SystemMetricDTO represents a system metric sample in API responses
type SystemMetricDTO struct {
	ID         int64     `json:"id"`
	MetricType string    `json:"metricType"`
	Component  string    `json:"component"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}

// SystemHealthDTO represents simulated platform component health
type SystemHealthDTO struct {
	Components    map[string]float64 `json:"components"`
	UptimeSeconds int64              `json:"uptimeSeconds"`
	ProcessCount  int                `json:"processCount"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}
