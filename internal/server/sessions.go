package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-fit/internal/geometry"
	"github.com/jonathan/resume-fit/internal/measure"
	"github.com/jonathan/resume-fit/internal/pagination"
	"github.com/jonathan/resume-fit/internal/rendering"
	"github.com/jonathan/resume-fit/internal/types"
)

// Session is one editing session: a document plus the navigator that pages
// through its rendered form.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	doc        *types.Document
	layout     rendering.Layout
	nav        *pagination.Navigator
	height     float64
	generation int
}

// SessionView is the JSON form of a session.
type SessionView struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"createdAt"`
	Paper     string              `json:"paper"`
	Compact   bool                `json:"compact"`
	Zoom      geometry.ZoomBounds `json:"zoomBounds"`
	Height    float64             `json:"height"`
	State     pagination.State    `json:"state"`
	Document  *types.Document     `json:"document,omitempty"`
}

func newSession(doc *types.Document, layout rendering.Layout, bounds geometry.ZoomBounds) *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		doc:       doc,
		layout:    layout,
		nav:       pagination.NewNavigator(layout.Profile, bounds),
	}
}

// View snapshots the session; withDocument includes the current document.
func (s *Session) View(withDocument bool) SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked(withDocument)
}

func (s *Session) viewLocked(withDocument bool) SessionView {
	v := SessionView{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Paper:     s.layout.Profile.Name,
		Compact:   s.layout.Compact,
		Zoom:      s.nav.Bounds(),
		Height:    s.height,
		State:     s.nav.State(),
	}
	if withDocument {
		v.Document = s.doc.Clone()
	}
	return v
}

// Navigate applies fn to the navigator under the session lock.
func (s *Session) Navigate(fn func(*pagination.Navigator) pagination.State) pagination.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.nav)
}

// Render returns the render instruction for the current state.
func (s *Session) Render() pagination.RenderInstruction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Render()
}

// Snapshot returns a copy of the document and the layout it renders with.
func (s *Session) Snapshot() (*types.Document, rendering.Layout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone(), s.layout
}

// Update swaps in doc and re-measures it. A content edit keeps the current
// page where it still exists; a replacement returns to page 1. A failed
// measurement restores the previous document. When a newer update starts
// while this one is measuring, this result is discarded.
func (s *Session) Update(ctx context.Context, m measure.Measurer, doc *types.Document, replace bool) (SessionView, error) {
	s.mu.Lock()
	prev := s.doc
	s.doc = doc
	s.generation++
	gen := s.generation
	layout := s.layout
	s.nav.BeginMeasure()
	s.mu.Unlock()

	height, err := m.Measure(ctx, doc, layout)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if gen == s.generation {
			s.doc = prev
			s.nav.SetTotalPages(s.nav.State().TotalPages)
		}
		return SessionView{}, err
	}
	if gen == s.generation {
		s.height = height
		pages := pagination.ComputePages(height, layout.Profile)
		if replace {
			s.nav.ReplaceDocument(pages)
		} else {
			s.nav.SetTotalPages(pages)
		}
	}
	return s.viewLocked(false), nil
}

// SessionStore holds live sessions in memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Create registers a new session for doc.
func (st *SessionStore) Create(doc *types.Document, layout rendering.Layout, bounds geometry.ZoomBounds) *Session {
	session := newSession(doc, layout, bounds)
	st.mu.Lock()
	st.sessions[session.ID] = session
	st.mu.Unlock()
	return session
}

// Get returns the session with id or ErrSessionNotFound.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	session, ok := st.sessions[id]
	if !ok {
		return nil, &ErrSessionNotFound{ID: id}
	}
	return session, nil
}

// Delete removes the session with id.
func (st *SessionStore) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return &ErrSessionNotFound{ID: id}
	}
	delete(st.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
