package dto

// DashboardMetricsDTO aggregates the headline dashboard counters
type DashboardMetricsDTO struct {
	TotalIncidents    int                `json:"totalIncidents"`
	CriticalIncidents int                `json:"criticalIncidents"`
	ActiveThreats     int                `json:"activeThreats"`
	AnomaliesDetected int64              `json:"anomaliesDetected"`
	SystemHealth      map[string]float64 `json:"systemHealth"`
}
