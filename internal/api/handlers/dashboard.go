package handlers

import (
	"net/http"

	"github.com/agisfl/agisfl/internal/api/dto"
	"github.com/agisfl/agisfl/internal/domain/incident"
	"github.com/agisfl/agisfl/internal/domain/threat"
	"github.com/agisfl/agisfl/internal/pkg/logger"
	"github.com/agisfl/agisfl/internal/pkg/utils"
	"github.com/agisfl/agisfl/internal/simulator"
)

type DashboardHandler struct {
	incidents incident.Service
	threats   threat.Service
	detector  *simulator.ThreatDetector
	monitor   *simulator.SystemMonitor
	logger    *logger.Logger
}

func NewDashboardHandler(
	incidents incident.Service,
	threats threat.Service,
	detector *simulator.ThreatDetector,
	monitor *simulator.SystemMonitor,
	log *logger.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		incidents: incidents,
		threats:   threats,
		detector:  detector,
		monitor:   monitor,
		logger:    log,
	}
}

// Metrics returns the headline dashboard counters
// @Summary Dashboard metrics
// @Description Aggregate incident/threat counts plus component health
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.DashboardMetricsDTO "Dashboard counters"
// @Security BearerAuth
// @Router /dashboard/metrics [get]
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	incidentCounts, err := h.incidents.GetSummary(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to load incident summary")
		return
	}

	threatCounts, err := h.threats.GetSummary(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to load threat summary")
		return
	}

	totalIncidents := 0
	for _, c := range incidentCounts {
		totalIncidents += c
	}
	activeThreats := 0
	for _, c := range threatCounts {
		activeThreats += c
	}

	var anomalies int64
	if h.detector != nil {
		anomalies = h.detector.DetectionsTotal()
	}

	var health map[string]float64
	if h.monitor != nil {
		health = h.monitor.Health().Components
	}

	utils.WriteSuccess(w, http.StatusOK, dto.DashboardMetricsDTO{
		TotalIncidents:    totalIncidents,
		CriticalIncidents: incidentCounts[incident.SeverityCritical],
		ActiveThreats:     activeThreats,
		AnomaliesDetected: anomalies,
		SystemHealth:      health,
	})
}
