// Package scores keeps the history of finished runs in a local SQLite file.
package scores

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	level       TEXT    NOT NULL,
	score       INTEGER NOT NULL,
	coins       INTEGER NOT NULL,
	total       INTEGER NOT NULL,
	ticks       INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	finished_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_level_score ON runs (level, score DESC, ticks ASC);
`

// Run is one finished playthrough.
type Run struct {
	ID         int64
	Level      string
	Score      int
	Coins      int
	Total      int
	Ticks      uint64
	Duration   time.Duration
	FinishedAt time.Time
}

// Store is the run history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating database dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores r and returns it with its ID set. A zero FinishedAt is
// replaced with the current time.
func (s *Store) Record(ctx context.Context, r Run) (Run, error) {
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (level, score, coins, total, ticks, duration_ms, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.Level, r.Score, r.Coins, r.Total, int64(r.Ticks), r.Duration.Milliseconds(), r.FinishedAt.UnixMilli())
	if err != nil {
		return Run{}, fmt.Errorf("inserting run: %w", err)
	}
	if r.ID, err = res.LastInsertId(); err != nil {
		return Run{}, fmt.Errorf("reading run id: %w", err)
	}
	return r, nil
}

// Best returns the top runs for level: highest score first, then fewest
// ticks. An empty level lists every level.
func (s *Store) Best(ctx context.Context, level string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, level, score, coins, total, ticks, duration_ms, finished_at
		FROM runs
		WHERE ? = '' OR level = ?
		ORDER BY score DESC, ticks ASC, id ASC
		LIMIT ?
	`, level, level, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			ticks      int64
			durationMS int64
			finishedMS int64
		)
		if err := rows.Scan(&r.ID, &r.Level, &r.Score, &r.Coins, &r.Total, &ticks, &durationMS, &finishedMS); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Ticks = uint64(ticks)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.FinishedAt = time.UnixMilli(finishedMS)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Count returns how many runs are stored for level, or for all levels when
// level is empty.
func (s *Store) Count(ctx context.Context, level string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE ? = '' OR level = ?`, level, level).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting runs: %w", err)
	}
	return n, nil
}
