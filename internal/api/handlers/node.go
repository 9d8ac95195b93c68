package handlers

import (
	"net/http"

	"github.com/Harshitk-cp/rks/internal/domain"
	"github.com/Harshitk-cp/rks/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NodeHandler struct {
	svc    *service.AgentService
	logger *zap.Logger
}

func NewNodeHandler(svc *service.AgentService, logger *zap.Logger) *NodeHandler {
	return &NodeHandler{svc: svc, logger: logger}
}

type nodeResponse struct {
	*domain.Node
	Gates service.GateExplanation `json:"gates"`
}

func (h *NodeHandler) withGates(n *domain.Node) nodeResponse {
	return nodeResponse{Node: n, Gates: h.svc.ExplainGates(n)}
}

func (h *NodeHandler) List(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.svc.ListLatestNodes(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to list nodes")
		return
	}
	writeJSON(w, http.StatusOK, nodes)
}

func (h *NodeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNodeRequest
	if isForm(r) {
		if err := parseForm(w, r); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form body")
			return
		}
		req = createNodeFromForm(r.PostForm)
	} else if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := h.svc.CreateNode(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to create node")
		return
	}
	respond(w, r, http.StatusCreated, h.withGates(n))
}

func (h *NodeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.GetNode(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to get node")
		return
	}
	writeJSON(w, http.StatusOK, h.withGates(n))
}

func (h *NodeHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var patch domain.NodePatch
	if isForm(r) {
		if err := parseForm(w, r); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form body")
			return
		}
		patch = PatchFromForm(r.PostForm)
	} else if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	n, err := h.svc.PatchNode(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to patch node")
		return
	}
	respond(w, r, http.StatusOK, h.withGates(n))
}

func (h *NodeHandler) Gates(w http.ResponseWriter, r *http.Request) {
	exp, err := h.svc.ExplainNode(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to explain node")
		return
	}
	writeJSON(w, http.StatusOK, exp)
}
