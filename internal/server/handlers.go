package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/specatlas/specatlas/pkg/buildinfo"
	"github.com/specatlas/specatlas/pkg/errors"
	"github.com/specatlas/specatlas/pkg/graph"
	"github.com/specatlas/specatlas/pkg/share"
	"github.com/specatlas/specatlas/pkg/store"
	"github.com/specatlas/specatlas/pkg/view"
)

// maxGraphBody caps uploaded graph payloads at 16 MiB.
const maxGraphBody = 16 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// =============================================================================
// Graphs
// =============================================================================

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	names, err := s.graphs.List(r.Context())
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "list graphs"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"graphs": names})
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	g, err := s.graphs.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, r, graphStoreError(name, err))
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handlePutGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	g, err := graph.ReadGraph(http.MaxBytesReader(w, r.Body, maxGraphBody))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidGraph, err, "parse graph body"))
		return
	}
	if err := s.graphs.Put(r.Context(), name, g); err != nil {
		s.writeError(w, r, graphStoreError(name, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":  name,
		"nodes": len(g.Nodes),
		"edges": len(g.Edges),
	})
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.graphs.Delete(r.Context(), name); err != nil {
		s.writeError(w, r, graphStoreError(name, err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var state view.State
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidState, err, "parse view state"))
		return
	}
	if err := state.Validate(); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidState, err, "invalid view state"))
		return
	}

	g, err := s.graphs.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, r, graphStoreError(name, err))
		return
	}
	snap, err := view.NewSnapshot(g)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "snapshot graph %s", name))
		return
	}

	result, err := s.runner.Run(r.Context(), snap, state)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "compute layout"))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// =============================================================================
// Shares
// =============================================================================

// createShareRequest is the POST /api/shares body.
type createShareRequest struct {
	GraphName string     `json:"graph_name"`
	State     view.State `json:"state"`
	TTLHours  int        `json:"ttl_hours,omitempty"`
}

func (s *Server) handleCreateShare(w http.ResponseWriter, r *http.Request) {
	var req createShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse share request"))
		return
	}
	if req.GraphName == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "graph_name is required"))
		return
	}
	if err := req.State.Validate(); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidState, err, "invalid view state"))
		return
	}

	// The link must point at a graph that actually exists.
	if _, err := s.graphs.Get(r.Context(), req.GraphName); err != nil {
		s.writeError(w, r, graphStoreError(req.GraphName, err))
		return
	}

	ttl := s.ShareTTL
	if req.TTLHours > 0 {
		ttl = time.Duration(req.TTLHours) * time.Hour
	}
	link := share.New(req.GraphName, req.State, ttl)
	if err := s.shares.Set(r.Context(), link); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "store share"))
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

func (s *Server) handleGetShare(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	link, err := s.shares.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "load share"))
		return
	}
	if link == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeShareNotFound, "share %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// =============================================================================
// Responses
// =============================================================================

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidStatus,
		errors.ErrCodeInvalidViewMode, errors.ErrCodeInvalidGraph,
		errors.ErrCodeInvalidState:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeGraphNotFound,
		errors.ErrCodeNodeNotFound, errors.ErrCodeShareNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// graphStoreError maps store sentinel errors onto coded errors.
func graphStoreError(name string, err error) error {
	switch {
	case stderrors.Is(err, store.ErrNotFound):
		return errors.New(errors.ErrCodeGraphNotFound, "graph %s not found", name)
	case stderrors.Is(err, store.ErrInvalidName):
		return errors.New(errors.ErrCodeInvalidInput, "invalid graph name %q", name)
	default:
		return errors.Wrap(errors.ErrCodeInternal, err, "graph store")
	}
}
