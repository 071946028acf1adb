package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/agisfl/agisfl/internal/api/dto"
	"github.com/agisfl/agisfl/internal/domain/attackpath"
	"github.com/agisfl/agisfl/internal/pkg/errors"
	"github.com/agisfl/agisfl/internal/pkg/logger"
	"github.com/agisfl/agisfl/internal/pkg/utils"
)

type AttackPathHandler struct {
	service attackpath.Service
	logger  *logger.Logger
}

func NewAttackPathHandler(service attackpath.Service, log *logger.Logger) *AttackPathHandler {
	return &AttackPathHandler{service: service, logger: log}
}

// List returns modeled attack paths, newest first
// @Summary List attack paths
// @Description Get modeled attack chains with their graph fragments
// @Tags AttackPaths
// @Produce json
// @Param limit query int false "Max paths to return (default 20)"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.AttackPathDTO} "Attack paths"
// @Security BearerAuth
// @Router /attack-paths [get]
func (h *AttackPathHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	paths, err := h.service.List(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err, "Failed to list attack paths")
		return
	}

	dtos := make([]dto.AttackPathDTO, len(paths))
	for i, p := range paths {
		dtos[i] = toAttackPathDTO(p)
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}

// Get returns a single attack path by ID
// @Summary Get attack path by ID
// @Tags AttackPaths
// @Produce json
// @Param id path int true "Attack path ID"
// @Success 200 {object} dto.AttackPathDTO "Attack path"
// @Failure 404 {object} utils.ErrorResponse "Attack path not found"
// @Security BearerAuth
// @Router /attack-paths/{id} [get]
func (h *AttackPathHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.WriteError(w, err.(*errors.AppError))
		return
	}

	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to get attack path")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toAttackPathDTO(p))
}

func toAttackPathDTO(p *attackpath.AttackPath) dto.AttackPathDTO {
	return dto.AttackPathDTO{
		ID:         p.ID,
		Name:       p.Name,
		Severity:   p.Severity,
		Nodes:      json.RawMessage(p.Nodes),
		Edges:      json.RawMessage(p.Edges),
		Likelihood: p.Likelihood,
		CreatedAt:  p.CreatedAt,
	}
}
