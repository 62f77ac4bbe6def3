// internal/store/sqlite.go
//
// SQLite-backed Store. Sessions survive restarts.
//
// Only the guess history is persisted; constraints are rebuilt on load by
// replaying the guesses in order, so the stored form cannot drift from what
// the engine would compute.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
)

// SQLite stores sessions in the tables created by assets/migrations.
type SQLite struct{ db *sql.DB }

// NewSQLiteStore wraps an opened, migrated database.
func NewSQLiteStore(db *sql.DB) *SQLite { return &SQLite{db: db} }

// Save upserts the session row and rewrites its guesses in one transaction.
func (s *SQLite) Save(ctx context.Context, sess *game.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO sessions (id, mode, target, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at`,
		sess.ID, string(sess.Mode), sess.Target, sess.CreatedAt.UTC().Format(time.RFC3339), now,
	); err != nil {
		return fmt.Errorf("upsert session %s: %w", sess.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM session_guesses WHERE session_id=?`, sess.ID); err != nil {
		return fmt.Errorf("clear guesses %s: %w", sess.ID, err)
	}
	for i, g := range sess.Guesses {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO session_guesses (session_id, seq, word, statuses) VALUES (?, ?, ?, ?)`,
			sess.ID, i, g.Word(), encodeStatuses(g.Statuses()),
		); err != nil {
			return fmt.Errorf("insert guess %d for %s: %w", i, sess.ID, err)
		}
	}
	return tx.Commit()
}

// Get loads a session and replays its guesses to rebuild the constraints.
func (s *SQLite) Get(ctx context.Context, id string) (*game.Session, error) {
	var mode, target, created string
	err := s.db.QueryRowContext(ctx,
		`SELECT mode, target, created_at FROM sessions WHERE id=?`, id,
	).Scan(&mode, &target, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT word, statuses FROM session_guesses WHERE session_id=? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("load guesses %s: %w", id, err)
	}
	defer rows.Close()

	guesses := []game.GuessResult{}
	for rows.Next() {
		var word, statuses string
		if err := rows.Scan(&word, &statuses); err != nil {
			return nil, err
		}
		st, err := decodeStatuses(statuses)
		if err != nil {
			return nil, fmt.Errorf("session %s guess %s: %w", id, word, err)
		}
		g, err := game.NewGuessResult(word, st)
		if err != nil {
			return nil, fmt.Errorf("session %s guess %s: %w", id, word, err)
		}
		guesses = append(guesses, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	createdAt, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return nil, fmt.Errorf("session %s created_at: %w", id, err)
	}
	c, err := game.Replay(guesses)
	if err != nil {
		return nil, fmt.Errorf("replay session %s: %w", id, err)
	}
	return &game.Session{
		ID:          id,
		Mode:        game.Mode(mode),
		Target:      target,
		Guesses:     guesses,
		Constraints: c,
		CreatedAt:   createdAt,
	}, nil
}

func encodeStatuses(st []game.LetterStatus) string {
	parts := make([]string, len(st))
	for i, s := range st {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

func decodeStatuses(s string) ([]game.LetterStatus, error) {
	parts := strings.Split(s, ",")
	out := make([]game.LetterStatus, len(parts))
	for i, p := range parts {
		st, err := game.ParseLetterStatus(p)
		if err != nil {
			return nil, err
		}
		out[i] = st
	}
	return out, nil
}
