package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"listeditor/internal/domain"
	"listeditor/internal/service"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error     string `json:"error"`
	Parameter string `json:"parameter,omitempty"`
	Details   string `json:"details,omitempty"`
}

// ListHandler handles list API requests
type ListHandler struct {
	svc    *service.ListService
	logger *slog.Logger
}

// NewListHandler creates a new list handler
func NewListHandler(svc *service.ListService, logger *slog.Logger) *ListHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListHandler{svc: svc, logger: logger}
}

// Register adds the list routes to mux
func (h *ListHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/lists", h.ListSessions)
	mux.HandleFunc("POST /api/lists", h.CreateList)
	mux.HandleFunc("GET /api/lists/{id}", h.GetList)
	mux.HandleFunc("DELETE /api/lists/{id}", h.DeleteList)

	mux.HandleFunc("POST /api/lists/{id}/start", h.AddAtStart)
	mux.HandleFunc("POST /api/lists/{id}/end", h.AddAtEnd)
	mux.HandleFunc("POST /api/lists/{id}/position", h.AddAtPosition)
	mux.HandleFunc("DELETE /api/lists/{id}/start", h.RemoveAtStart)
	mux.HandleFunc("DELETE /api/lists/{id}/end", h.RemoveAtEnd)
	mux.HandleFunc("DELETE /api/lists/{id}/position/{index}", h.RemoveAtPosition)

	mux.HandleFunc("PUT /api/lists/{id}/nodes", h.LoadRecords)
	mux.HandleFunc("GET /api/lists/{id}/export", h.ExportRecords)
	mux.HandleFunc("PUT /api/lists/{id}/nodes/{nodeID}/position", h.MoveNode)
	mux.HandleFunc("POST /api/lists/{id}/relayout", h.Relayout)
	mux.HandleFunc("POST /api/lists/{id}/emphasis/{index}", h.Emphasize)
	mux.HandleFunc("POST /api/lists/{id}/edges/{edgeID}/emphasis", h.EmphasizeEdge)

	mux.HandleFunc("POST /api/lists/{id}/save", h.Save)
	mux.HandleFunc("POST /api/lists/{id}/restore", h.Restore)
	mux.HandleFunc("GET /api/documents", h.ListDocuments)
}

// ListSessions returns a summary of every session
func (h *ListHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.List(r.Context()), http.StatusOK)
}

// CreateList starts a session, optionally seeded with records
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req CreateListRequest
	if !h.decode(w, r, &req) {
		return
	}

	snap, err := h.svc.Create(r.Context(), req.Name, req.Records)
	if err != nil {
		h.writeServiceError(w, "Failed to create list", err)
		return
	}
	h.writeJSON(w, snap, http.StatusCreated)
}

// GetList returns a session snapshot
func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Get(r.Context(), r.PathValue("id"))
	h.respond(w, "Failed to get list", snap, err)
}

// DeleteList ends a session
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.writeServiceError(w, "Failed to delete list", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddAtStart inserts a node after HEAD
func (h *ListHandler) AddAtStart(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	if !h.decode(w, r, &req) {
		return
	}
	snap, err := h.svc.AddAtStart(r.Context(), r.PathValue("id"), req.Value)
	h.respond(w, "Failed to add node", snap, err)
}

// AddAtEnd appends a node
func (h *ListHandler) AddAtEnd(w http.ResponseWriter, r *http.Request) {
	var req ValueRequest
	if !h.decode(w, r, &req) {
		return
	}
	snap, err := h.svc.AddAtEnd(r.Context(), r.PathValue("id"), req.Value)
	h.respond(w, "Failed to add node", snap, err)
}

// AddAtPosition inserts a node after the node at index (0 is HEAD)
func (h *ListHandler) AddAtPosition(w http.ResponseWriter, r *http.Request) {
	var req PositionRequest
	if !h.decode(w, r, &req) {
		return
	}
	snap, err := h.svc.AddAtPosition(r.Context(), r.PathValue("id"), req.Value, *req.Index)
	h.respond(w, "Failed to add node", snap, err)
}

// RemoveAtStart drops the first real node
func (h *ListHandler) RemoveAtStart(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.RemoveAtStart(r.Context(), r.PathValue("id"))
	h.respond(w, "Failed to remove node", snap, err)
}

// RemoveAtEnd drops the last node
func (h *ListHandler) RemoveAtEnd(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.RemoveAtEnd(r.Context(), r.PathValue("id"))
	h.respond(w, "Failed to remove node", snap, err)
}

// RemoveAtPosition drops the real node at the index in the path
func (h *ListHandler) RemoveAtPosition(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		h.writeServiceError(w, "Failed to remove node", err)
		return
	}
	snap, err := h.svc.RemoveAtPosition(r.Context(), r.PathValue("id"), index)
	h.respond(w, "Failed to remove node", snap, err)
}

// Emphasize highlights the real node at the index in the path
func (h *ListHandler) Emphasize(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		h.writeServiceError(w, "Failed to emphasize node", err)
		return
	}
	snap, err := h.svc.Emphasize(r.Context(), r.PathValue("id"), index)
	h.respond(w, "Failed to emphasize node", snap, err)
}

// EmphasizeEdge highlights one edge and dims the others
func (h *ListHandler) EmphasizeEdge(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.EmphasizeEdge(r.Context(), r.PathValue("id"), r.PathValue("edgeID"))
	h.respond(w, "Failed to emphasize edge", snap, err)
}

// MoveNode overrides one node's position
func (h *ListHandler) MoveNode(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if !h.decode(w, r, &req) {
		return
	}
	pos := domain.NewPosition(*req.X, *req.Y)
	snap, err := h.svc.MoveNode(r.Context(), r.PathValue("id"), r.PathValue("nodeID"), pos)
	h.respond(w, "Failed to move node", snap, err)
}

// Relayout recomputes positions; ?from=<nodeID> keeps earlier nodes in place
func (h *ListHandler) Relayout(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Relayout(r.Context(), r.PathValue("id"), r.URL.Query().Get("from"))
	h.respond(w, "Failed to relayout list", snap, err)
}

// Save persists a session's records
func (h *ListHandler) Save(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.svc.Save(r.Context(), id); err != nil {
		h.writeServiceError(w, "Failed to save list", err)
		return
	}
	h.writeJSON(w, map[string]string{"status": "saved", "id": id}, http.StatusOK)
}

// Restore reloads a session from its saved document
func (h *ListHandler) Restore(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Restore(r.Context(), r.PathValue("id"))
	h.respond(w, "Failed to restore list", snap, err)
}

// ListDocuments returns every saved document
func (h *ListHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.svc.SavedDocuments(r.Context())
	if err != nil {
		h.writeServiceError(w, "Failed to list saved lists", err)
		return
	}
	h.writeJSON(w, docs, http.StatusOK)
}

// Health reports liveness
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}

// Helper methods

func (h *ListHandler) respond(w http.ResponseWriter, msg string, snap *service.Snapshot, err error) {
	if err != nil {
		h.writeServiceError(w, msg, err)
		return
	}
	h.writeJSON(w, snap, http.StatusOK)
}

// writeServiceError maps an error to a status: validation 400, missing 404,
// anything else 500
func (h *ListHandler) writeServiceError(w http.ResponseWriter, msg string, err error) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		first := validation.First()
		h.writeErrorResponse(w, ErrorResponse{
			Error:     validation.Error(),
			Parameter: first.Parameter,
			Details:   first.Error,
		}, http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
	default:
		h.logger.Error(msg, "error", err)
		h.writeError(w, msg, err.Error(), http.StatusInternalServerError)
	}
}

func (h *ListHandler) writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *ListHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	h.writeErrorResponse(w, ErrorResponse{Error: error, Details: details}, statusCode)
}

func (h *ListHandler) writeErrorResponse(w http.ResponseWriter, resp ErrorResponse, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", "error", err)
	}
}

func pathIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		return 0, domain.NewValidationError("index", "Invalid index")
	}
	return index, nil
}
