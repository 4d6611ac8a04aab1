// Package storage provides SQLite-based session history for the robot simulator.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only a summary of each finished session is recorded. World state is never
// read back, so a session always starts from a freshly generated world.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/robotsim/internal/config"
)

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// SessionEntry is the summary of one finished session.
type SessionEntry struct {
	ID         int64
	Shell      string // "terminal", "window" or "script"
	Seed       int64
	Attempts   int
	Moves      int // Applied moves
	Blocked    int
	FinalX     int
	FinalY     int
	DurationMs int64
	CreatedAt  time.Time
}

// Duration returns the session length.
func (e SessionEntry) Duration() time.Duration {
	return time.Duration(e.DurationMs) * time.Millisecond
}

// ShellStats contains aggregated history for one shell.
type ShellStats struct {
	Shell        string
	Sessions     int
	TotalMoves   int64
	TotalBlocked int64
	LastPlayed   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			shell TEXT NOT NULL,
			seed INTEGER NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			blocked INTEGER NOT NULL DEFAULT 0,
			final_x INTEGER NOT NULL,
			final_y INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_shell ON sessions(shell);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(e SessionEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (shell, seed, attempts, moves, blocked, final_x, final_y, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Shell, e.Seed, e.Attempts, e.Moves, e.Blocked, e.FinalX, e.FinalY, e.DurationMs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions retrieves the newest sessions, newest first.
// An empty shell matches every shell.
func (s *Store) RecentSessions(shell string, limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, shell, seed, attempts, moves, blocked, final_x, final_y, duration_ms, created_at
		 FROM sessions
		 WHERE (? = '' OR shell = ?)
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		shell, shell, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Shell, &e.Seed, &e.Attempts, &e.Moves, &e.Blocked,
			&e.FinalX, &e.FinalY, &e.DurationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Stats retrieves aggregated history for a shell.
// A shell with no sessions yields zero values and no error.
func (s *Store) Stats(shell string) (*ShellStats, error) {
	stats := &ShellStats{Shell: shell}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(moves), 0), COALESCE(SUM(blocked), 0), MAX(created_at)
		 FROM sessions WHERE shell = ?`,
		shell,
	).Scan(&stats.Sessions, &stats.TotalMoves, &stats.TotalBlocked, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get shell stats: %w", err)
	}
	stats.LastPlayed = parseTimestamp(lastPlayed)

	return stats, nil
}

// ClearSessions deletes all sessions for the given shell.
// An empty shell deletes everything.
func (s *Store) ClearSessions(shell string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE (? = '' OR shell = ?)", shell, shell)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string column values.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
