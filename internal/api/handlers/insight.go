package handlers

import (
	"net/http"
	"strconv"

	"github.com/agisfl/agisfl/internal/api/dto"
	"github.com/agisfl/agisfl/internal/domain/insight"
	"github.com/agisfl/agisfl/internal/pkg/errors"
	"github.com/agisfl/agisfl/internal/pkg/logger"
	"github.com/agisfl/agisfl/internal/pkg/utils"
)

type InsightHandler struct {
	service insight.Service
	logger  *logger.Logger
}

func NewInsightHandler(service insight.Service, log *logger.Logger) *InsightHandler {
	return &InsightHandler{service: service, logger: log}
}

// List returns active AI insights, newest first
// @Summary List AI insights
// @Description Get active AI-generated insights
// @Tags Insights
// @Produce json
// @Param limit query int false "Max insights to return (default 20)"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.InsightDTO} "Active insights"
// @Security BearerAuth
// @Router /ai/insights [get]
func (h *InsightHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	insights, err := h.service.ListActive(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err, "Failed to list insights")
		return
	}

	dtos := make([]dto.InsightDTO, len(insights))
	for i, ins := range insights {
		dtos[i] = dto.InsightDTO{
			ID:          ins.ID,
			Type:        ins.Type,
			Title:       ins.Title,
			Description: ins.Description,
			Severity:    ins.Severity,
			Confidence:  ins.Confidence,
			Data:        ins.Data,
			IsActive:    ins.IsActive,
			CreatedAt:   ins.CreatedAt,
		}
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}

// Dismiss marks an insight inactive
// @Summary Dismiss insight
// @Description Mark an insight inactive so it drops off the dashboard
// @Tags Insights
// @Produce json
// @Param id path int true "Insight ID"
// @Success 200 {object} map[string]string "Dismissed"
// @Failure 404 {object} utils.ErrorResponse "Insight not found"
// @Security BearerAuth
// @Router /ai/insights/{id}/dismiss [post]
func (h *InsightHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteError(w, err.(*errors.AppError))
		return
	}

	if err := h.service.Dismiss(r.Context(), id); err != nil {
		writeServiceError(w, err, "Failed to dismiss insight")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]string{"status": "dismissed"})
}
