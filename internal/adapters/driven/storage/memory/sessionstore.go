package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
// Sessions are copied on the way in and out so callers never share slices.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.Session),
	}
}

// Save stores or replaces a session.
func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = cloneSession(session)
	return nil
}

// Get retrieves a session by ID.
func (s *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := cloneSession(session)
	return &c, nil
}

// List returns all sessions, most recently updated first.
func (s *SessionStore) List(_ context.Context) ([]domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		result = append(result, cloneSession(session))
	}
	slices.SortFunc(result, func(a, b domain.Session) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return result, nil
}

// Delete removes a session.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func cloneSession(in domain.Session) domain.Session {
	out := in
	out.Questions = make([]domain.Question, len(in.Questions))
	for i, q := range in.Questions {
		q.Options = slices.Clone(q.Options)
		out.Questions[i] = q
	}
	out.Results = make([]domain.SearchResult, len(in.Results))
	for i, r := range in.Results {
		if r.Audience != nil {
			a := *r.Audience
			r.Audience = &a
		}
		if r.URL != nil {
			u := *r.URL
			r.URL = &u
		}
		r.Options = slices.Clone(r.Options)
		out.Results[i] = r
	}
	return out
}
