package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driven"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driving"
	"github.com/dawsonl1/halda-serper/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService owns merged result sets across repeated search runs.
// Read-modify-write cycles on sessions are serialised by mu.
type SessionService struct {
	mu           sync.Mutex
	store        driven.SessionStore
	parser       driving.QuestionParser
	orchestrator driving.SearchOrchestrator
	now          func() time.Time
}

// NewSessionService creates a new session service.
func NewSessionService(
	store driven.SessionStore,
	parser driving.QuestionParser,
	orchestrator driving.SearchOrchestrator,
) *SessionService {
	return &SessionService{
		store:        store,
		parser:       parser,
		orchestrator: orchestrator,
		now:          time.Now,
	}
}

// Start parses the text and persists a new session.
func (s *SessionService) Start(ctx context.Context, req driving.StartRequest) (*domain.Session, error) {
	if strings.TrimSpace(req.SchoolName) == "" {
		return nil, domain.NewValidationError("schoolName", "is required")
	}
	if strings.TrimSpace(req.RawText) == "" {
		return nil, domain.NewValidationError("rawText", "is required")
	}

	now := s.now()
	session := domain.Session{
		ID:                uuid.NewString(),
		SchoolName:        strings.TrimSpace(req.SchoolName),
		UniversityWebsite: strings.TrimSpace(req.UniversityWebsite),
		Questions:         s.parser.Parse(req.RawText),
		Results:           []domain.SearchResult{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	logger.Info("Started session %s with %d questions", session.ID, len(session.Questions))
	return &session, nil
}

// Run searches only selections without a result for their current audience.
func (s *SessionService) Run(
	ctx context.Context, sessionID string, selections []domain.Selection,
) (*domain.RunReport, error) {
	if len(selections) == 0 {
		return nil, domain.NewValidationError("selections", "select at least one answer")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	pending, skipped := PendingSelections(selections, session.Results)
	logger.Debug("Session %s: %d pending, %d already satisfied", sessionID, len(pending), len(skipped))
	if len(pending) == 0 {
		return nil, domain.ErrNothingToSearch
	}

	fresh, err := s.orchestrator.Search(ctx, driving.SearchRequest{
		SchoolName:        session.SchoolName,
		UniversityWebsite: session.UniversityWebsite,
		Selections:        pending,
	})
	if err != nil {
		return nil, err
	}

	session.Results = MergeResults(session.Results, fresh)
	session.UpdatedAt = s.now()
	if err := s.store.Save(ctx, *session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &domain.RunReport{
		Results:  session.Results,
		NewKeys:  ResultKeys(fresh),
		Searched: len(pending),
		Skipped:  len(skipped),
	}, nil
}

// Rerun issues exactly one search for a stored result and overwrites it.
func (s *SessionService) Rerun(
	ctx context.Context, sessionID string, key domain.ResultKey, queryOverride string,
) (*domain.SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	base, ok := session.Result(key)
	if !ok {
		return nil, fmt.Errorf("result %s: %w", key, domain.ErrNotFound)
	}

	fresh, err := s.orchestrator.Search(ctx, driving.SearchRequest{
		SchoolName:        session.SchoolName,
		UniversityWebsite: session.UniversityWebsite,
		Selections: []domain.Selection{{
			QuestionCode:  base.QuestionCode,
			OptionCode:    base.OptionCode,
			Label:         base.Label,
			Audience:      base.AudienceValue(),
			QueryOverride: strings.TrimSpace(queryOverride),
		}},
	})
	if err != nil {
		return nil, err
	}
	if len(fresh) == 0 {
		return nil, errors.New("no results returned for rerun")
	}

	session.Results = MergeResults(session.Results, fresh[:1])
	session.UpdatedAt = s.now()
	if err := s.store.Save(ctx, *session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	logger.Info("Reran %s (override=%t)", key, queryOverride != "")
	return &fresh[0], nil
}

// Pick makes the candidate at index the primary URL of a stored result.
func (s *SessionService) Pick(
	ctx context.Context, sessionID string, key domain.ResultKey, index int,
) (*domain.SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	result, ok := session.Result(key)
	if !ok {
		return nil, fmt.Errorf("result %s: %w", key, domain.ErrNotFound)
	}
	if index < 0 || index >= len(result.Options) {
		return nil, domain.NewValidationError("index",
			fmt.Sprintf("must be between 0 and %d", len(result.Options)-1))
	}

	url := result.Options[index].URL
	result.URL = &url
	session.UpdatedAt = s.now()
	if err := s.store.Save(ctx, *session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	picked := *result
	return &picked, nil
}

// Get retrieves a session by ID.
func (s *SessionService) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.store.Get(ctx, sessionID)
}

// List returns all sessions.
func (s *SessionService) List(ctx context.Context) ([]domain.Session, error) {
	return s.store.List(ctx)
}

// Delete removes a session.
func (s *SessionService) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Delete(ctx, sessionID)
}
