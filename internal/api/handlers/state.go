package handlers

import (
	"net/http"

	"github.com/Harshitk-cp/rks/internal/domain"
	"github.com/Harshitk-cp/rks/internal/service"
	"go.uber.org/zap"
)

// StateHandler serves the combined view a form front end redirects to after
// each mutation.
type StateHandler struct {
	svc        *service.AgentService
	recentRuns int
	logger     *zap.Logger
}

func NewStateHandler(svc *service.AgentService, recentRuns int, logger *zap.Logger) *StateHandler {
	return &StateHandler{svc: svc, recentRuns: recentRuns, logger: logger}
}

type stateResponse struct {
	Nodes          []domain.Node          `json:"nodes"`
	Contradictions []domain.Contradiction `json:"contradictions"`
	Runs           []domain.RunLog        `json:"runs"`
	Layers         []domain.Layer         `json:"layers"`
}

func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	nodes, err := h.svc.ListLatestNodes(ctx)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to load nodes")
		return
	}
	contradictions, err := h.svc.ListContradictions(ctx)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to load contradictions")
		return
	}
	runs, err := h.svc.ListRecentRuns(ctx, h.recentRuns)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to load runs")
		return
	}

	writeJSON(w, http.StatusOK, stateResponse{
		Nodes:          nodes,
		Contradictions: contradictions,
		Runs:           runs,
		Layers:         domain.AllLayers(),
	})
}
