// Package scores keeps a local history of finished games in SQLite.
package scores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Run is one finished game.
type Run struct {
	ID      uuid.UUID
	Score   int
	Level   int
	EndedAt time.Time
}

// ErrNoRuns is returned by Best when nothing has been recorded yet.
var ErrNoRuns = errors.New("scores: no runs recorded")

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and runs migrations.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open scores db: %w", err)
	}
	db.SetMaxOpenConns(1)
	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate scores db: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			ended_at TIMESTAMP NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC, level DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended ON runs(ended_at DESC);`,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, q := range stmts {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Record stores a finished game. A zero ID or EndedAt is filled in.
func (s *Store) Record(ctx context.Context, r Run) (Run, error) {
	if r.Score < 0 || r.Level < 1 {
		return Run{}, fmt.Errorf("record run: invalid score %d at level %d", r.Score, r.Level)
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.EndedAt.IsZero() {
		r.EndedAt = time.Now()
	}
	r.EndedAt = r.EndedAt.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs(id, score, level, ended_at) VALUES(?, ?, ?, ?)`,
		r.ID.String(), r.Score, r.Level, r.EndedAt)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	return r, nil
}

// Best returns the highest-scoring run, ties broken by level then by the
// earliest finish.
func (s *Store) Best(ctx context.Context) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, score, level, ended_at FROM runs
		 ORDER BY score DESC, level DESC, ended_at ASC LIMIT 1`)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}
	return r, err
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 || limit > 500 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, score, level, ended_at FROM runs ORDER BY ended_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Clear deletes every recorded run.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM runs`)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r  Run
		id string
	)
	if err := sc.Scan(&id, &r.Score, &r.Level, &r.EndedAt); err != nil {
		return Run{}, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return Run{}, fmt.Errorf("scan run id %q: %w", id, err)
	}
	r.ID = parsed
	return r, nil
}
