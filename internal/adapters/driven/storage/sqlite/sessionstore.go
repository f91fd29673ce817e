package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driven"
)

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	db *sql.DB
}

var _ driven.SessionStore = (*sessionStore)(nil)

// Save upserts the session row and replaces its results in one transaction.
func (s *sessionStore) Save(ctx context.Context, session domain.Session) (err error) {
	questionsJSON, err := json.Marshal(session.Questions)
	if err != nil {
		return fmt.Errorf("marshalling questions: %w", err)
	}

	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (id, school_name, university_website, questions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			school_name = excluded.school_name,
			university_website = excluded.university_website,
			questions = excluded.questions,
			updated_at = excluded.updated_at
	`, session.ID, session.SchoolName, session.UniversityWebsite, string(questionsJSON),
		session.CreatedAt.UTC(), session.UpdatedAt.UTC()); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM results WHERE session_id = ?", session.ID); err != nil {
		return fmt.Errorf("clearing results: %w", err)
	}

	for i, r := range session.Results {
		optionsJSON, mErr := json.Marshal(r.Options)
		if mErr != nil {
			return fmt.Errorf("marshalling options for %s: %w", r.Key(), mErr)
		}
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO results (session_id, position, question_code, option_code, label, audience, url, options)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, session.ID, i, r.QuestionCode, r.OptionCode, r.Label,
			nullString(r.Audience), nullString(r.URL), string(optionsJSON)); err != nil {
			return fmt.Errorf("saving result %s: %w", r.Key(), err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing session: %w", err)
	}
	return nil
}

// Get retrieves a session and its results.
func (s *sessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, school_name, university_website, questions, created_at, updated_at
		FROM sessions WHERE id = ?
	`, id)

	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if session.Results, err = s.results(ctx, id); err != nil {
		return nil, err
	}
	return session, nil
}

// List returns all sessions, most recently updated first.
func (s *sessionStore) List(ctx context.Context) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, school_name, university_website, questions, created_at, updated_at
		FROM sessions ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}

	var sessions []domain.Session //nolint:prealloc // size unknown from query
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	rows.Close()

	for i := range sessions {
		if sessions[i].Results, err = s.results(ctx, sessions[i].ID); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

// Delete removes a session; results cascade.
func (s *sessionStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *sessionStore) results(ctx context.Context, sessionID string) ([]domain.SearchResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question_code, option_code, label, audience, url, options
		FROM results WHERE session_id = ? ORDER BY position
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	results := []domain.SearchResult{}
	for rows.Next() {
		var r domain.SearchResult
		var audience, url sql.NullString
		var optionsJSON string
		if err := rows.Scan(&r.QuestionCode, &r.OptionCode, &r.Label, &audience, &url, &optionsJSON); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		if err := json.Unmarshal([]byte(optionsJSON), &r.Options); err != nil {
			return nil, fmt.Errorf("unmarshalling options: %w", err)
		}
		r.Audience = stringPtr(audience)
		r.URL = stringPtr(url)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}
	return results, nil
}

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*domain.Session, error) {
	var session domain.Session
	var questionsJSON string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&session.ID, &session.SchoolName, &session.UniversityWebsite,
		&questionsJSON, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	if err := json.Unmarshal([]byte(questionsJSON), &session.Questions); err != nil {
		return nil, fmt.Errorf("unmarshalling questions: %w", err)
	}
	if createdAt.Valid {
		session.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		session.UpdatedAt = updatedAt.Time
	}
	return &session, nil
}
