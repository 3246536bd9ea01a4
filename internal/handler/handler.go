package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"graphstudio/internal/backend"
	"graphstudio/internal/codec"
	"graphstudio/internal/domain"
	"graphstudio/internal/editor"
	"graphstudio/internal/render"
	"graphstudio/internal/repository"
	"graphstudio/internal/service"
	"graphstudio/internal/store"
)

const maxBodyBytes = 8 << 20

// GraphHandler serves the renderer-facing API of one workspace
type GraphHandler struct {
	ws     *service.Workspace
	json   *codec.JSONCodec
	yaml   *codec.YAMLCodec
	logger *slog.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(ws *service.Workspace, logger *slog.Logger) *GraphHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GraphHandler{
		ws:     ws,
		json:   codec.NewJSONCodec(),
		yaml:   codec.NewYAMLCodec(),
		logger: logger,
	}
}

// Register adds every API route to mux
func (h *GraphHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/graph", h.GetGraph)
	mux.HandleFunc("DELETE /api/graph", h.ClearGraph)
	mux.HandleFunc("POST /api/mode", h.SetMode)
	mux.HandleFunc("POST /api/click", h.Click)
	mux.HandleFunc("POST /api/directed", h.SetDirected)

	mux.HandleFunc("GET /api/export/json", h.ExportJSON)
	mux.HandleFunc("GET /api/export/yaml", h.ExportYAML)
	mux.HandleFunc("GET /api/export/html", h.ExportHTML)
	mux.HandleFunc("POST /api/import/json", h.ImportJSON)
	mux.HandleFunc("POST /api/import/yaml", h.ImportYAML)

	mux.HandleFunc("POST /api/save", h.Save)
	mux.HandleFunc("POST /api/load", h.Load)

	mux.HandleFunc("POST /api/run/{operation}", h.Run)
	mux.HandleFunc("POST /api/build_from_rep", h.BuildFromRepresentation)

	mux.HandleFunc("GET /healthz", h.Healthz)
}

// Error response structure
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// GetGraph returns the current snapshot
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.ws.Snapshot(), http.StatusOK)
}

// ClearGraph removes every node and edge
func (h *GraphHandler) ClearGraph(w http.ResponseWriter, r *http.Request) {
	h.ws.Clear()
	h.writeJSON(w, map[string]string{"status": "cleared"}, http.StatusOK)
}

// ModeRequest selects an editing mode
type ModeRequest struct {
	Mode string `json:"mode"`
}

// SetMode switches the editing mode
func (h *GraphHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req ModeRequest
	if !h.decode(w, r, &req) {
		return
	}
	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		h.writeError(w, "Invalid mode", err.Error(), http.StatusBadRequest)
		return
	}

	h.ws.SetMode(mode)
	h.writeJSON(w, map[string]string{"mode": string(mode), "cursor": mode.Cursor()}, http.StatusOK)
}

// ClickRequest is a canvas click together with the answers to any prompt it
// raises. A prompt whose field has no answer is cancelled.
type ClickRequest struct {
	editor.Click
	Answers map[editor.Field]string `json:"answers"`
}

// ClickResponse reports what the click did and which prompts were asked
type ClickResponse struct {
	editor.Result
	Prompts []editor.Prompt `json:"prompts"`
}

// Click applies a canvas click in the current mode
func (h *GraphHandler) Click(w http.ResponseWriter, r *http.Request) {
	var req ClickRequest
	if !h.decode(w, r, &req) {
		return
	}

	sheet := editor.NewAnswerSheet(req.Answers)
	res, err := h.ws.Click(req.Click, sheet)
	if err != nil {
		h.fail(w, "Click rejected", err)
		return
	}

	prompts := sheet.Asked
	if prompts == nil {
		prompts = []editor.Prompt{}
	}
	h.writeJSON(w, ClickResponse{Result: res, Prompts: prompts}, http.StatusOK)
}

// DirectedRequest sets directedness
type DirectedRequest struct {
	IsDirected bool `json:"isDirected"`
}

// SetDirected switches every edge between directed and undirected
func (h *GraphHandler) SetDirected(w http.ResponseWriter, r *http.Request) {
	var req DirectedRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.ws.SetDirected(req.IsDirected)
	h.writeJSON(w, map[string]bool{"isDirected": req.IsDirected}, http.StatusOK)
}

// ExportJSON exports the graph as an indented JSON attachment
func (h *GraphHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	h.export(w, h.json, "graph.json")
}

// ExportYAML exports the graph as YAML
func (h *GraphHandler) ExportYAML(w http.ResponseWriter, r *http.Request) {
	h.export(w, h.yaml, "graph.yaml")
}

func (h *GraphHandler) export(w http.ResponseWriter, exp codec.Exporter, filename string) {
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if ct, ok := exp.(codec.ContentTyper); ok {
		w.Header().Set("Content-Type", ct.ContentType())
	}

	if err := exp.Export(h.ws.ExportDocument(), w); err != nil {
		// Can't write error response as we already set headers
		h.logger.Error("export failed", "format", exp.Format(), "error", err)
	}
}

// ExportHTML renders the current snapshot as a standalone chart page
func (h *GraphHandler) ExportHTML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.HTML(w, h.ws.Snapshot(), "graphstudio"); err != nil {
		h.logger.Error("html export failed", "error", err)
	}
}

// ImportJSON replaces the graph with an uploaded JSON document
func (h *GraphHandler) ImportJSON(w http.ResponseWriter, r *http.Request) {
	h.importDocument(w, r, h.json)
}

// ImportYAML replaces the graph with an uploaded YAML document
func (h *GraphHandler) ImportYAML(w http.ResponseWriter, r *http.Request) {
	h.importDocument(w, r, h.yaml)
}

func (h *GraphHandler) importDocument(w http.ResponseWriter, r *http.Request, imp codec.Importer) {
	in, err := imp.Parse(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.fail(w, "Invalid document", err)
		return
	}
	doc, err := h.ws.ImportDocument(in)
	if err != nil {
		h.fail(w, "Invalid document", err)
		return
	}

	h.logger.Info("graph imported", "format", imp.Format(), "nodes", len(doc.Nodes), "edges", len(doc.Edges))
	h.writeJSON(w, doc, http.StatusOK)
}

// Save stores the current graph in the saved-document slot
func (h *GraphHandler) Save(w http.ResponseWriter, r *http.Request) {
	doc, err := h.ws.Save(r.Context())
	if err != nil {
		h.fail(w, "Failed to save graph", err)
		return
	}
	h.writeJSON(w, doc, http.StatusOK)
}

// Load replaces the graph with the saved-document slot
func (h *GraphHandler) Load(w http.ResponseWriter, r *http.Request) {
	saved, err := h.ws.Load(r.Context())
	if err != nil {
		h.fail(w, "Failed to load graph", err)
		return
	}
	h.writeJSON(w, saved, http.StatusOK)
}

// Healthz reports liveness
func (h *GraphHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// Helper methods

func (h *GraphHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// fail maps err to a status code and writes it
func (h *GraphHandler) fail(w http.ResponseWriter, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, "error", err)
	}
	h.writeError(w, msg, err.Error(), status)
}

func statusFor(err error) int {
	var be *backend.Error
	switch {
	case errors.As(err, &be):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrStale):
		return http.StatusConflict
	case errors.Is(err, backend.ErrTransport), errors.Is(err, backend.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrNoBackend), errors.Is(err, service.ErrNoRepository):
		return http.StatusServiceUnavailable
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, store.ErrUnknownNode),
		errors.Is(err, store.ErrUnknownEdge):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateNode), errors.Is(err, store.ErrSelfLoop):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidParam),
		errors.Is(err, store.ErrEmptyID),
		errors.Is(err, editor.ErrInvalidCapacity),
		errors.Is(err, codec.ErrMalformedDocument),
		errors.Is(err, codec.ErrMalformedRepresentation):
		return http.StatusBadRequest
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

func (h *GraphHandler) writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *GraphHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		h.logger.Error("failed to encode error response", "error", err)
	}
}
