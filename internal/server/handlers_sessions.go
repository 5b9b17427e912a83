package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jonathan/resume-fit/internal/geometry"
	"github.com/jonathan/resume-fit/internal/logging"
	"github.com/jonathan/resume-fit/internal/pagination"
	"github.com/jonathan/resume-fit/internal/rendering"
)

// CreateSessionRequest represents the request body for POST /sessions.
// Zoom names a preset ("editor" or "preview"); empty uses the configured bounds.
type CreateSessionRequest struct {
	Document json.RawMessage `json:"document"`
	Zoom     string          `json:"zoom,omitempty"`
	LayoutRequest
}

// DocumentRequest represents the request body for PATCH and PUT /sessions/{id}/document
type DocumentRequest struct {
	Document json.RawMessage `json:"document"`
}

// GotoRequest represents the request body for /sessions/{id}/goto
type GotoRequest struct {
	Page int `json:"page"`
}

// StateResponse is returned by every navigation endpoint
type StateResponse struct {
	ID    string           `json:"id"`
	State pagination.State `json:"state"`
}

// RenderResponse represents the response for /sessions/{id}/render
type RenderResponse struct {
	ID          string                       `json:"id"`
	State       pagination.State             `json:"state"`
	Instruction pagination.RenderInstruction `json:"instruction"`
	HTML        string                       `json:"html,omitempty"`
}

// handleCreateSession measures a document and opens a navigator on it
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	doc, layout, err := s.prepare(req.Document, req.LayoutRequest)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	bounds, err := s.zoomBounds(req.Zoom)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	session := s.sessions.Create(doc, layout, bounds)
	view, err := session.Update(r.Context(), s.measurer, doc, true)
	if err != nil {
		s.sessions.Delete(session.ID) //nolint:errcheck
		s.failure(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Debug("Session created",
		"session_id", session.ID,
		"paper", layout.Profile.Name,
		"pages", view.State.TotalPages,
	)
	s.jsonResponse(w, http.StatusCreated, view)
}

// handleGetSession returns session state and document
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, session.View(true))
}

// handleDeleteSession closes a session
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		s.failure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGoto jumps to a page, clamped to the page range
func (s *Server) handleGoto(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	var req GotoRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	state := session.Navigate(func(n *pagination.Navigator) pagination.State {
		return n.Goto(req.Page)
	})
	s.jsonResponse(w, http.StatusOK, StateResponse{ID: session.ID, State: state})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r, (*pagination.Navigator).Next)
}

func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r, (*pagination.Navigator).Prev)
}

func (s *Server) handleZoomIn(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r, (*pagination.Navigator).ZoomIn)
}

func (s *Server) handleZoomOut(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r, (*pagination.Navigator).ZoomOut)
}

func (s *Server) handleToggleViewMode(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r, (*pagination.Navigator).ToggleViewMode)
}

// handleEditDocument applies a content edit; the current page is kept
// unless it no longer exists
func (s *Server) handleEditDocument(w http.ResponseWriter, r *http.Request) {
	s.updateDocument(w, r, false)
}

// handleReplaceDocument loads a different document and returns to page 1
func (s *Server) handleReplaceDocument(w http.ResponseWriter, r *http.Request) {
	s.updateDocument(w, r, true)
}

// handleRender returns the viewports for the current state. With
// ?format=html the rendered document is included.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	view := session.View(false)
	resp := RenderResponse{
		ID:          session.ID,
		State:       view.State,
		Instruction: session.Render(),
	}

	if strings.EqualFold(r.URL.Query().Get("format"), "html") {
		doc, layout := session.Snapshot()
		html, err := rendering.RenderHTML(doc, layout)
		if err != nil {
			s.failure(w, r, err)
			return
		}
		resp.HTML = html
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) updateDocument(w http.ResponseWriter, r *http.Request, replace bool) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	var req DocumentRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}
	doc, err := s.parseDocument(req.Document)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	view, err := session.Update(r.Context(), s.measurer, doc, replace)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, view)
}

func (s *Server) navigate(w http.ResponseWriter, r *http.Request, fn func(*pagination.Navigator) pagination.State) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}
	state := session.Navigate(fn)
	s.jsonResponse(w, http.StatusOK, StateResponse{ID: session.ID, State: state})
}

// session looks up the {id} path parameter, writing 404 when it is unknown.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	session, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.failure(w, r, err)
		return nil, false
	}
	return session, true
}

// zoomBounds resolves a preset name; empty uses the configured bounds.
func (s *Server) zoomBounds(preset string) (geometry.ZoomBounds, error) {
	if preset == "" {
		return s.settings.Zoom()
	}
	bounds, err := geometry.ZoomPreset(preset)
	if err != nil {
		return geometry.ZoomBounds{}, &ErrValidation{Field: "zoom", Message: err.Error()}
	}
	return bounds, nil
}
