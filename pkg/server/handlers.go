package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/rosview/pkg/buildinfo"
	"github.com/matzehuels/rosview/pkg/errors"
	"github.com/matzehuels/rosview/pkg/graph"
	"github.com/matzehuels/rosview/pkg/manager"
	"github.com/matzehuels/rosview/pkg/positions"
	"github.com/matzehuels/rosview/pkg/render"
)

// graphResponse is the body of GET /api/graph.
type graphResponse struct {
	Revision string         `json:"revision"`
	Source   manager.Source `json:"source"`
	Graph    graph.Snapshot `json:"graph"`
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := graphResponse{
		Revision: s.mgr.Revision(),
		Source:   s.mgr.Source(),
		Graph:    s.mgr.Graph().Snapshot(),
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	paths := s.mgr.Paths()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, paths)
}

func (s *Server) handleNeighbors(w http.ResponseWriter, r *http.Request) {
	id, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidName, err, "bad node id"))
		return
	}
	s.mu.Lock()
	nb, err := s.mgr.Neighbors(id)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nb)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	rev := s.mgr.Revision()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"revision": rev})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	pos := s.mgr.Graph().Positions()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, pos)
}

func (s *Server) handlePutLayout(w http.ResponseWriter, r *http.Request) {
	var l positions.Layout
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout"))
		return
	}

	s.mu.Lock()
	applied := positions.Apply(s.mgr.Graph(), l)
	err := s.mgr.SaveLayout(r.Context(), nil)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"applied": applied})
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.mgr.DeleteLayout(r.Context())
	pos := s.mgr.ResetLayout()
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pos)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	page, err := render.HTML(r.Context(), s.mgr.Graph(), s.render)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	dot := render.ToDOT(s.mgr.Graph(), s.render)
	s.mu.Unlock()

	svg, err := render.SVG(r.Context(), dot)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

// =============================================================================
// Helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeFileNotFound, errors.ErrCodeUnknownPath, errors.ErrCodeUnknownNode:
		return http.StatusNotFound
	case errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidSetting, errors.ErrCodeInvalidName, errors.ErrCodeInconsistent:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeDependencyUnavailable, errors.ErrCodeUnsupported:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
