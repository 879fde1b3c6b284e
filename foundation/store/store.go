// Package store persists completed session results in SQLite, keyed by the
// opaque session id. The fused score snapshot and the speech/content
// analysis summaries are stored as JSON blobs; their exact shape belongs to
// the producers.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one completed session row.
type Record struct {
	SessionID       string
	Category        string
	DurationSeconds float64
	Transcript      string
	Scores          json.RawMessage
	SpeechAnalysis  json.RawMessage
	ContentAnalysis json.RawMessage
	CreatedAt       time.Time
}

// Store manages session persistence backed by SQLite.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id       TEXT PRIMARY KEY,
	category         TEXT NOT NULL,
	duration_seconds REAL NOT NULL,
	transcript       TEXT NOT NULL DEFAULT '',
	scores           TEXT NOT NULL DEFAULT '{}',
	speech_analysis  TEXT NOT NULL DEFAULT '{}',
	content_analysis TEXT NOT NULL DEFAULT '{}',
	created_at       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at);
`

// Open opens (creating if needed) the session database at dbPath.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", p, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts or replaces the record for its session id.
func (s *Store) Save(ctx context.Context, r Record) error {
	if r.SessionID == "" {
		return fmt.Errorf("record has no session id")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	const q = `
INSERT OR REPLACE INTO sessions
	(session_id, category, duration_seconds, transcript, scores, speech_analysis, content_analysis, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, q,
		r.SessionID, r.Category, r.DurationSeconds, r.Transcript,
		blobOrEmpty(r.Scores), blobOrEmpty(r.SpeechAnalysis), blobOrEmpty(r.ContentAnalysis),
		r.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save session[%s]: %w", r.SessionID, err)
	}
	return nil
}

// Load returns the record for a session id.
func (s *Store) Load(ctx context.Context, sessionID string) (Record, error) {
	const q = `
SELECT session_id, category, duration_seconds, transcript, scores, speech_analysis, content_analysis, created_at
FROM sessions WHERE session_id = ?`

	var r Record
	var createdAt string
	var scores, speech, content string

	err := s.db.QueryRowContext(ctx, q, sessionID).Scan(
		&r.SessionID, &r.Category, &r.DurationSeconds, &r.Transcript,
		&scores, &speech, &content, &createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("load session[%s]: %w", sessionID, err)
	}

	r.Scores = json.RawMessage(scores)
	r.SpeechAnalysis = json.RawMessage(speech)
	r.ContentAnalysis = json.RawMessage(content)
	r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Record{}, fmt.Errorf("load session[%s]: bad created_at: %w", sessionID, err)
	}
	return r, nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	const q = `
SELECT session_id, category, duration_seconds, transcript, scores, speech_analysis, content_analysis, created_at
FROM sessions ORDER BY created_at DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var createdAt string
		var scores, speech, content string
		if err := rows.Scan(&r.SessionID, &r.Category, &r.DurationSeconds, &r.Transcript,
			&scores, &speech, &content, &createdAt); err != nil {
			return nil, err
		}
		r.Scores = json.RawMessage(scores)
		r.SpeechAnalysis = json.RawMessage(speech)
		r.ContentAnalysis = json.RawMessage(content)
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func blobOrEmpty(b json.RawMessage) string {
	if len(b) == 0 {
		return "{}"
	}
	return string(b)
}
