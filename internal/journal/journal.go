package journal

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
CREATE TABLE IF NOT EXISTS play_sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    instance_id TEXT NOT NULL,
    day_key TEXT NOT NULL,
    duration_seconds INTEGER NOT NULL,
    recorded_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_play_sessions_instance ON play_sessions(instance_id);
`

// Entry is one journaled play session.
type Entry struct {
	ID         int64
	InstanceID string
	DayKey     string
	Seconds    int64
	RecordedAt time.Time
}

// Store is the SQLite-backed session journal.
type Store struct {
	db *sql.DB
}

// Open creates or opens the journal database in the data directory.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "sessions.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends one finished session.
func (s *Store) Record(ctx context.Context, instanceID, dayKey string, seconds int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO play_sessions (instance_id, day_key, duration_seconds, recorded_at) VALUES (?, ?, ?, ?)`,
		instanceID, dayKey, seconds, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, instance_id, day_key, duration_seconds, recorded_at
         FROM play_sessions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var recordedAt string
		if err := rows.Scan(&entry.ID, &entry.InstanceID, &entry.DayKey, &entry.Seconds, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if parsed, perr := time.Parse(time.RFC3339, recordedAt); perr == nil {
			entry.RecordedAt = parsed
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return entries, nil
}

// TotalsByInstance sums journaled seconds per instance.
func (s *Store) TotalsByInstance(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT instance_id, SUM(duration_seconds) FROM play_sessions GROUP BY instance_id`)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int64)
	for rows.Next() {
		var id string
		var total int64
		if err := rows.Scan(&id, &total); err != nil {
			return nil, fmt.Errorf("scan total: %w", err)
		}
		totals[id] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate totals: %w", err)
	}
	return totals, nil
}
