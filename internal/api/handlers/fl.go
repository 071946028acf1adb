package handlers

import (
	"net/http"

	"github.com/agisfl/agisfl/internal/pkg/logger"
	"github.com/agisfl/agisfl/internal/pkg/utils"
	"github.com/agisfl/agisfl/internal/simulator"
)

// FLHandler exposes the federated learning coordinator state
type FLHandler struct {
	coordinator *simulator.FLCoordinator
	logger      *logger.Logger
}

func NewFLHandler(coordinator *simulator.FLCoordinator, log *logger.Logger) *FLHandler {
	return &FLHandler{coordinator: coordinator, logger: log}
}

// Status returns coordinator status and round counters
// @Summary FL status
// @Tags FederatedLearning
// @Produce json
// @Success 200 {object} simulator.FLSnapshot "Coordinator state"
// @Security BearerAuth
// @Router /fl/status [get]
func (h *FLHandler) Status(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, h.coordinator.Snapshot())
}

// Nodes returns the participating node set
// @Summary FL nodes
// @Tags FederatedLearning
// @Produce json
// @Success 200 {object} []simulator.FLNode "Participating nodes"
// @Security BearerAuth
// @Router /fl/nodes [get]
func (h *FLHandler) Nodes(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, h.coordinator.Snapshot().Nodes)
}

// Performance returns per-node accuracy and the aggregate model accuracy
// @Summary FL performance
// @Tags FederatedLearning
// @Produce json
// @Success 200 {object} map[string]interface{} "Accuracy figures"
// @Security BearerAuth
// @Router /fl/performance [get]
func (h *FLHandler) Performance(w http.ResponseWriter, r *http.Request) {
	snap := h.coordinator.Snapshot()

	perNode := make(map[string]float64, len(snap.Nodes))
	for _, n := range snap.Nodes {
		perNode[n.ID] = n.Accuracy
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"round":         snap.Round,
		"modelAccuracy": snap.ModelAccuracy,
		"nodeAccuracy":  perNode,
		"lastTrainedAt": snap.LastTrainedAt,
	})
}

// Start resumes training
// @Summary Start FL training
// @Tags FederatedLearning
// @Produce json
// @Success 200 {object} simulator.FLSnapshot "Coordinator state"
// @Security BearerAuth
// @Router /fl/start [post]
func (h *FLHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.coordinator.Resume()
	h.logger.Info("FL training resumed")
	utils.WriteSuccess(w, http.StatusOK, h.coordinator.Snapshot())
}

// Pause suspends training
// @Summary Pause FL training
// @Tags FederatedLearning
// @Produce json
// @Success 200 {object} simulator.FLSnapshot "Coordinator state"
// @Security BearerAuth
// @Router /fl/pause [post]
func (h *FLHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.coordinator.Pause()
	h.logger.Info("FL training paused")
	utils.WriteSuccess(w, http.StatusOK, h.coordinator.Snapshot())
}

// Reset restores the initial coordinator state
// @Summary Reset FL training
// @Tags FederatedLearning
// @Produce json
// @Success 200 {object} simulator.FLSnapshot "Coordinator state"
// @Security BearerAuth
// @Router /fl/reset [post]
func (h *FLHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.coordinator.Reset()
	h.logger.Info("FL training reset")
	utils.WriteSuccess(w, http.StatusOK, h.coordinator.Snapshot())
}
