package handlers

import (
	"net/http"
	"strconv"

	"github.com/Harshitk-cp/rks/internal/domain"
	"github.com/Harshitk-cp/rks/internal/service"
	"go.uber.org/zap"
)

type RunHandler struct {
	svc    *service.AgentService
	logger *zap.Logger
}

func NewRunHandler(svc *service.AgentService, logger *zap.Logger) *RunHandler {
	return &RunHandler{svc: svc, logger: logger}
}

// List returns every run oldest first, or with ?limit=n the n newest runs
// newest first.
func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		runs []domain.RunLog
		err  error
	)
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, convErr := strconv.Atoi(limitStr)
		if convErr != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		runs, err = h.svc.ListRecentRuns(r.Context(), limit)
	} else {
		runs, err = h.svc.ListRuns(r.Context())
	}
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to list runs")
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (h *RunHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.LogRunRequest
	if isForm(r) {
		if err := parseForm(w, r); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form body")
			return
		}
		req = runFromForm(r.PostForm)
	} else if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	run, err := h.svc.LogRun(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err, "failed to log run")
		return
	}
	respond(w, r, http.StatusCreated, run)
}
