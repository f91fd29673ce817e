package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driven"
)

// audienceStore implements driven.AudienceStore.
// added_at is stored as Unix nanoseconds so cutoff comparisons are exact.
type audienceStore struct {
	db *sql.DB
}

var _ driven.AudienceStore = (*audienceStore)(nil)

// Save inserts an audience or refreshes its label and AddedAt, keeping its position.
func (s *audienceStore) Save(ctx context.Context, audience domain.Audience) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO custom_audiences (value, label, added_at, seq)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM custom_audiences))
		ON CONFLICT(value) DO UPDATE SET
			label = excluded.label,
			added_at = excluded.added_at
	`, audience.Value, audience.Label, audience.AddedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("saving audience: %w", err)
	}
	return nil
}

// List returns audiences in insertion order.
func (s *audienceStore) List(ctx context.Context) ([]domain.Audience, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT value, label, added_at FROM custom_audiences ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("querying audiences: %w", err)
	}
	defer rows.Close()

	var audiences []domain.Audience //nolint:prealloc // size unknown from query
	for rows.Next() {
		var a domain.Audience
		var addedAt int64
		if err := rows.Scan(&a.Value, &a.Label, &addedAt); err != nil {
			return nil, fmt.Errorf("scanning audience: %w", err)
		}
		a.AddedAt = time.Unix(0, addedAt).UTC()
		audiences = append(audiences, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audiences: %w", err)
	}
	return audiences, nil
}

// DeleteBefore removes audiences added before cutoff.
func (s *audienceStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM custom_audiences WHERE added_at < ?", cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("pruning audiences: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning audiences: %w", err)
	}
	return int(n), nil
}
