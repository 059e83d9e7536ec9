// Package history handles SQLite persistence of completed sessions.
package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/keydrill/keydrill/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// MaxRecords caps how many sessions are retained, in memory and on disk.
const MaxRecords = 100

// Store keeps a newest-first, capped session log. The in-memory slice
// mirrors the sessions table so reads never touch the database.
type Store struct {
	db      *sql.DB
	records []model.SessionRecord
}

// Open opens or creates the SQLite database, applies migrations, and loads
// the retained records.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	if err := store.load(context.Background()); err != nil {
		if cerr := db.Close(); cerr != nil {
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			timestamp TEXT NOT NULL,
			total_rounds INTEGER NOT NULL,
			correct_rounds INTEGER NOT NULL,
			duration_seconds REAL NOT NULL,
			difficulty TEXT NOT NULL,
			mode TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_id_desc ON sessions(id DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT timestamp, total_rounds, correct_rounds, duration_seconds, difficulty, mode
		 FROM sessions
		 ORDER BY id DESC
		 LIMIT ?`, MaxRecords)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	s.records = s.records[:0]
	for rows.Next() {
		var rec model.SessionRecord
		var ts, diff, mode string
		if err := rows.Scan(&ts, &rec.TotalRounds, &rec.CorrectRounds, &rec.DurationSeconds, &diff, &mode); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return err
		}
		rec.Timestamp = parsed
		if rec.Difficulty, err = model.ParseDifficulty(diff); err != nil {
			return err
		}
		if rec.Mode, err = model.ParseMode(mode); err != nil {
			return err
		}
		s.records = append(s.records, rec)
	}
	return rows.Err()
}

// Records returns the retained sessions, newest first. The returned slice
// is a copy.
func (s *Store) Records() []model.SessionRecord {
	out := make([]model.SessionRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Append stores a completed session at the front of the log, discarding the
// oldest records beyond MaxRecords.
func (s *Store) Append(ctx context.Context, rec model.SessionRecord) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (timestamp, total_rounds, correct_rounds, duration_seconds, difficulty, mode)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Timestamp.Format(time.RFC3339Nano),
		rec.TotalRounds,
		rec.CorrectRounds,
		rec.DurationSeconds,
		rec.Difficulty.String(),
		rec.Mode.String(),
	); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions
		 WHERE id NOT IN (SELECT id FROM sessions ORDER BY id DESC LIMIT ?)`, MaxRecords); err != nil {
		return err
	}

	s.records = append([]model.SessionRecord{rec}, s.records...)
	if len(s.records) > MaxRecords {
		s.records = s.records[:MaxRecords]
	}
	return nil
}

// Clear empties the log and persists the deletion immediately.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return err
	}
	s.records = s.records[:0]
	return nil
}
