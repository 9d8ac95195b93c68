package handlers

import (
	"net/http"

	"github.com/Harshitk-cp/rks/internal/domain"
	"github.com/Harshitk-cp/rks/internal/service"
	"go.uber.org/zap"
)

type ContradictionHandler struct {
	svc    *service.AgentService
	logger *zap.Logger
}

func NewContradictionHandler(svc *service.AgentService, logger *zap.Logger) *ContradictionHandler {
	return &ContradictionHandler{svc: svc, logger: logger}
}

func (h *ContradictionHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.ListContradictions(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to list contradictions")
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (h *ContradictionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateContradictionRequest
	if isForm(r) {
		if err := parseForm(w, r); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form body")
			return
		}
		req = contradictionFromForm(r.PostForm)
	} else if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.CreateContradiction(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to create contradiction")
		return
	}
	respond(w, r, http.StatusCreated, c)
}
