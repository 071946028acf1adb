package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/agisfl/agisfl/internal/api/dto"
	"github.com/agisfl/agisfl/internal/domain/threat"
	"github.com/agisfl/agisfl/internal/pkg/errors"
	"github.com/agisfl/agisfl/internal/pkg/logger"
	"github.com/agisfl/agisfl/internal/pkg/utils"
	"github.com/agisfl/agisfl/internal/pkg/validator"
)

type ThreatHandler struct {
	service   threat.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewThreatHandler(service threat.Service, log *logger.Logger, val *validator.Validator) *ThreatHandler {
	return &ThreatHandler{service: service, logger: log, validator: val}
}

// List returns all threats with pagination and filtering
// @Summary List threats
// @Description Get a paginated list of threats with optional filtering
// @Tags Threats
// @Produce json
// @Param type query string false "Filter by threat type"
// @Param severity query string false "Filter by severity"
// @Param active query bool false "Only active threats"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} utils.PaginatedResponse{data=[]dto.ThreatDTO} "List of threats"
// @Security BearerAuth
// @Router /threats [get]
func (h *ThreatHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	filter := threat.Filter{
		Type:       r.URL.Query().Get("type"),
		Severity:   r.URL.Query().Get("severity"),
		ActiveOnly: r.URL.Query().Get("active") == "true",
	}

	offset := (page - 1) * pageSize
	threats, total, err := h.service.List(r.Context(), filter, pageSize, offset)
	if err != nil {
		writeServiceError(w, err, "Failed to list threats")
		return
	}

	dtos := make([]dto.ThreatDTO, len(threats))
	for i, t := range threats {
		dtos[i] = toThreatDTO(t)
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(dtos, page, pageSize, total))
}

// Get returns a single threat by ID
// @Summary Get threat by ID
// @Description Get detailed information about a specific threat
// @Tags Threats
// @Produce json
// @Param id path int true "Threat ID"
// @Success 200 {object} dto.ThreatDTO "Threat details"
// @Failure 404 {object} utils.ErrorResponse "Threat not found"
// @Security BearerAuth
// @Router /threats/{id} [get]
func (h *ThreatHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteError(w, err.(*errors.AppError))
		return
	}

	t, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to get threat")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toThreatDTO(t))
}

// Create records a new threat
// @Summary Create threat
// @Description Record a new threat; a THR- code is generated server-side
// @Tags Threats
// @Accept json
// @Produce json
// @Param request body dto.CreateThreatRequest true "Threat details"
// @Success 201 {object} dto.ThreatDTO "Threat recorded"
// @Failure 400 {object} utils.ErrorResponse "Invalid request or validation error"
// @Security BearerAuth
// @Router /threats [post]
func (h *ThreatHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateThreatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	t := &threat.Threat{
		Name:        req.Name,
		Type:        req.Type,
		Severity:    req.Severity,
		Description: req.Description,
		SourceIP:    req.SourceIP,
		TargetIP:    req.TargetIP,
		Confidence:  req.Confidence,
		Metadata:    req.Metadata,
	}

	if _, err := h.service.Create(r.Context(), t); err != nil {
		writeServiceError(w, err, "Failed to create threat")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, toThreatDTO(t))
}

// Mitigate marks a threat as mitigated
// @Summary Mitigate threat
// @Description Mark a threat inactive; repeating the call is a no-op
// @Tags Threats
// @Produce json
// @Param id path int true "Threat ID"
// @Success 200 {object} dto.ThreatDTO "Mitigated threat"
// @Failure 404 {object} utils.ErrorResponse "Threat not found"
// @Security BearerAuth
// @Router /threats/{id}/mitigate [post]
func (h *ThreatHandler) Mitigate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteError(w, err.(*errors.AppError))
		return
	}

	t, err := h.service.Mitigate(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to mitigate threat")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toThreatDTO(t))
}

func toThreatDTO(t *threat.Threat) dto.ThreatDTO {
	return dto.ThreatDTO{
		ID:          t.ID,
		ThreatID:    t.ThreatID,
		Name:        t.Name,
		Type:        t.Type,
		Severity:    t.Severity,
		Description: t.Description,
		SourceIP:    t.SourceIP,
		TargetIP:    t.TargetIP,
		Confidence:  t.Confidence,
		IsActive:    t.IsActive,
		Metadata:    t.Metadata,
		DetectedAt:  t.DetectedAt,
	}
}
