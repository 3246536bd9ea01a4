package handler

import (
	"errors"
	"net/http"

	"graphstudio/internal/domain"
	"graphstudio/internal/service"
)

// Run starts the algorithm named by the {operation} path segment. The body is
// a service.Params object and may be empty.
func (h *GraphHandler) Run(w http.ResponseWriter, r *http.Request) {
	op := r.PathValue("operation")

	var req service.Params
	if !h.decode(w, r, &req) {
		return
	}

	run, err := h.ws.RunNamed(r.Context(), op, req)
	if errors.Is(err, service.ErrUnknownOperation) {
		h.writeError(w, "Unknown operation", op, http.StatusNotFound)
		return
	}
	if err != nil {
		h.fail(w, "Run failed", err)
		return
	}
	h.logger.Info("run started", "operation", op, "id", run.ID, "steps", len(run.Steps))
	h.writeJSON(w, run, http.StatusOK)
}

// BuildRequest is pasted representation text and the mode it is written in
type BuildRequest struct {
	Representation string `json:"representation"`
	Mode           string `json:"mode"`
}

// BuildFromRepresentation replaces the graph with one built from a representation
func (h *GraphHandler) BuildFromRepresentation(w http.ResponseWriter, r *http.Request) {
	var req BuildRequest
	if !h.decode(w, r, &req) {
		return
	}
	mode, err := domain.ParseRepMode(req.Mode)
	if err != nil {
		h.writeError(w, "Invalid mode", err.Error(), http.StatusBadRequest)
		return
	}

	run, err := h.ws.BuildFromRepresentation(r.Context(), req.Representation, mode)
	if err != nil {
		h.fail(w, "Build failed", err)
		return
	}
	h.writeJSON(w, run, http.StatusOK)
}
