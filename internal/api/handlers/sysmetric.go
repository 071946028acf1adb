package handlers

import (
	"net/http"
	"time"

	"github.com/agisfl/agisfl/internal/api/dto"
	"github.com/agisfl/agisfl/internal/domain/sysmetric"
	"github.com/agisfl/agisfl/internal/pkg/logger"
	"github.com/agisfl/agisfl/internal/pkg/utils"
	"github.com/agisfl/agisfl/internal/simulator"
)

type SystemHandler struct {
	service sysmetric.Service
	monitor *simulator.SystemMonitor
	logger  *logger.Logger
}

func NewSystemHandler(service sysmetric.Service, monitor *simulator.SystemMonitor, log *logger.Logger) *SystemHandler {
	return &SystemHandler{service: service, monitor: monitor, logger: log}
}

// Metrics returns the latest metric sample per type and component
// @Summary Latest system metrics
// @Description Get the most recent sample for each metric type and component
// @Tags System
// @Produce json
// @Param type query string false "Metric type for history (cpu, memory, network)"
// @Param window query string false "History window, Go duration (default 1h)"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.SystemMetricDTO} "Metric samples"
// @Security BearerAuth
// @Router /system/metrics [get]
func (h *SystemHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metricType := r.URL.Query().Get("type")

	var samples []*sysmetric.Metric
	var err error
	if metricType != "" {
		window := time.Hour
		if raw := r.URL.Query().Get("window"); raw != "" {
			if parsed, perr := time.ParseDuration(raw); perr == nil && parsed > 0 {
				window = parsed
			}
		}
		samples, err = h.service.History(r.Context(), metricType, window)
	} else {
		samples, err = h.service.Latest(r.Context())
	}
	if err != nil {
		writeServiceError(w, err, "Failed to load system metrics")
		return
	}

	dtos := make([]dto.SystemMetricDTO, len(samples))
	for i, m := range samples {
		dtos[i] = dto.SystemMetricDTO{
			ID:         m.ID,
			MetricType: m.MetricType,
			Component:  m.Component,
			Value:      m.Value,
			Unit:       m.Unit,
			Status:     m.Status,
			Timestamp:  m.Timestamp,
		}
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}

// Health returns simulated platform component health
// @Summary Platform component health
// @Description Get simulated component health percentages and uptime
// @Tags System
// @Produce json
// @Success 200 {object} dto.SystemHealthDTO "Component health"
// @Security BearerAuth
// @Router /system/health [get]
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	snap := h.monitor.Health()

	utils.WriteSuccess(w, http.StatusOK, dto.SystemHealthDTO{
		Components:    snap.Components,
		UptimeSeconds: snap.UptimeSeconds,
		ProcessCount:  snap.ProcessCount,
		UpdatedAt:     snap.UpdatedAt,
	})
}
