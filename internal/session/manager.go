// Package session owns the in-memory editing sessions. Each session
// holds exactly one document and one upload store; sessions never share
// mutable state.
package session

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lpforge/lpforge/internal/assets"
	"github.com/lpforge/lpforge/internal/document"
)

// Session is one operator's editing context.
type Session struct {
	ID        string
	Doc       *document.Document
	Assets    *assets.Store
	Revision  int
	CreatedAt time.Time

	mu sync.Mutex
}

// Mutate runs fn against the session's document under the session lock
// and bumps the revision when fn succeeds. Edits are synchronous: each
// runs to completion before the next is observed.
func (s *Session) Mutate(fn func(doc *document.Document) error) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.Doc); err != nil {
		return s.Revision, err
	}
	s.Revision++
	return s.Revision, nil
}

// View runs fn with read access to the session's document and the
// current revision.
func (s *Session) View(fn func(doc *document.Document, revision int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.Doc, s.Revision)
}

// Manager tracks active sessions by id.
type Manager struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	defaultFile string
}

// NewManager returns a Manager. defaultFile optionally names a document
// JSON file used for new sessions and reset; empty means the bundled
// default document.
func NewManager(defaultFile string) *Manager {
	return &Manager{
		sessions:    make(map[string]*Session),
		defaultFile: defaultFile,
	}
}

// loadDefault produces a fresh independent default document.
func (m *Manager) loadDefault() (*document.Document, error) {
	if m.defaultFile == "" {
		return document.Default(), nil
	}
	return document.LoadFile(m.defaultFile)
}

// Create starts a new session. When r is non-nil the initial document
// is loaded from it (all-or-nothing: a bad payload fails the create and
// no session is made); otherwise the default document is used.
func (m *Manager) Create(r io.Reader) (*Session, error) {
	var doc *document.Document
	var err error
	if r != nil {
		doc, err = document.Load(r)
	} else {
		doc, err = m.loadDefault()
	}
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:        uuid.New().String(),
		Doc:       doc,
		Assets:    assets.NewStore(),
		CreatedAt: time.Now().UTC(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns the session with the given id, or an error.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("unknown session %s", id)
	}
	return s, nil
}

// Reset replaces the session's document wholesale with a fresh default
// load and clears the cached uploads, whose slot keys reference a
// document shape that no longer applies.
func (m *Manager) Reset(id string) (*Session, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	doc, err := m.loadDefault()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.Doc = doc
	s.Revision++
	s.mu.Unlock()
	s.Assets.Reset()
	return s, nil
}

// Duplicate deep-copies the session's document into itself. There is no
// user-visible change, but any previously captured reference to the old
// tree no longer aliases the live document.
func (m *Manager) Duplicate(id string) (*Session, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.Doc = s.Doc.Clone()
	s.Revision++
	s.mu.Unlock()
	return s, nil
}

// Replace swaps in a document parsed from r. On parse failure the
// session's current document is unchanged.
func (m *Manager) Replace(id string, r io.Reader) (*Session, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	doc, err := document.Load(r)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.Doc = doc
	s.Revision++
	s.mu.Unlock()
	return s, nil
}

// Delete removes a session.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of active sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
