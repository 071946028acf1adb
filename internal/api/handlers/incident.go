package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/agisfl/agisfl/internal/api/dto"
	"github.com/agisfl/agisfl/internal/domain/incident"
	"github.com/agisfl/agisfl/internal/pkg/errors"
	"github.com/agisfl/agisfl/internal/pkg/logger"
	"github.com/agisfl/agisfl/internal/pkg/utils"
	"github.com/agisfl/agisfl/internal/pkg/validator"
)

type IncidentHandler struct {
	service   incident.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewIncidentHandler(service incident.Service, log *logger.Logger, val *validator.Validator) *IncidentHandler {
	return &IncidentHandler{service: service, logger: log, validator: val}
}

// List returns all incidents with pagination and filtering
// @Summary List incidents
// @Description Get a paginated list of incidents with optional filtering
// @Tags Incidents
// @Produce json
// @Param severity query string false "Filter by severity"
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by type"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} utils.PaginatedResponse{data=[]dto.IncidentDTO} "List of incidents"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /incidents [get]
func (h *IncidentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	filter := incident.Filter{
		Severity: r.URL.Query().Get("severity"),
		Status:   r.URL.Query().Get("status"),
		Type:     r.URL.Query().Get("type"),
	}

	offset := (page - 1) * pageSize
	incidents, total, err := h.service.List(r.Context(), filter, pageSize, offset)
	if err != nil {
		writeServiceError(w, err, "Failed to list incidents")
		return
	}

	dtos := make([]dto.IncidentDTO, len(incidents))
	for i, inc := range incidents {
		dtos[i] = toIncidentDTO(inc)
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(dtos, page, pageSize, total))
}

// Get returns a single incident by ID
// @Summary Get incident by ID
// @Description Get detailed information about a specific incident
// @Tags Incidents
// @Produce json
// @Param id path int true "Incident ID"
// @Success 200 {object} dto.IncidentDTO "Incident details"
// @Failure 404 {object} utils.ErrorResponse "Incident not found"
// @Security BearerAuth
// @Router /incidents/{id} [get]
func (h *IncidentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteError(w, err.(*errors.AppError))
		return
	}

	inc, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to get incident")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toIncidentDTO(inc))
}

// Create creates a new incident
// @Summary Create incident
// @Description Create a new incident
// @Tags Incidents
// @Accept json
// @Produce json
// @Param request body dto.CreateIncidentRequest true "Incident details"
// @Success 201 {object} dto.IncidentDTO "Incident created"
// @Failure 400 {object} utils.ErrorResponse "Invalid request or validation error"
// @Security BearerAuth
// @Router /incidents [post]
func (h *IncidentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	inc := &incident.Incident{
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
		Type:        req.Type,
		RiskScore:   req.RiskScore,
		Metadata:    req.Metadata,
	}

	if _, err := h.service.Create(r.Context(), inc); err != nil {
		writeServiceError(w, err, "Failed to create incident")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, toIncidentDTO(inc))
}

// Patch applies a partial update to an incident
// @Summary Patch incident
// @Description Apply a partial update; replaying the same patch yields the same state
// @Tags Incidents
// @Accept json
// @Produce json
// @Param id path int true "Incident ID"
// @Param request body dto.PatchIncidentRequest true "Fields to update"
// @Success 200 {object} dto.IncidentDTO "Updated incident"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 404 {object} utils.ErrorResponse "Incident not found"
// @Security BearerAuth
// @Router /incidents/{id} [patch]
func (h *IncidentHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteError(w, err.(*errors.AppError))
		return
	}

	var req dto.PatchIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	inc, err := h.service.Patch(r.Context(), id, incident.Patch{
		Title:       req.Title,
		Description: req.Description,
		Severity:    req.Severity,
		Status:      req.Status,
		AssigneeID:  req.AssigneeID,
		RiskScore:   req.RiskScore,
	})
	if err != nil {
		writeServiceError(w, err, "Failed to update incident")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toIncidentDTO(inc))
}

func toIncidentDTO(inc *incident.Incident) dto.IncidentDTO {
	return dto.IncidentDTO{
		ID:          inc.ID,
		IncidentID:  inc.IncidentID,
		Title:       inc.Title,
		Description: inc.Description,
		Severity:    inc.Severity,
		Type:        inc.Type,
		Status:      inc.Status,
		AssigneeID:  inc.AssigneeID,
		RiskScore:   inc.RiskScore,
		Metadata:    inc.Metadata,
		CreatedAt:   inc.CreatedAt,
		UpdatedAt:   inc.UpdatedAt,
	}
}
