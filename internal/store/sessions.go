package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Session kinds.
const (
	KindTranslate = "translate"
	KindRecord    = "record"
)

// Session records one translation run or one lecture recording
type Session struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"` // translate, record
	Model       string    `json:"model"`
	Language    string    `json:"language"`
	StartedAt   time.Time `json:"started_at"`
	EndedAt     time.Time `json:"ended_at"`
	Chunks      int       `json:"chunks,omitempty"`
	Transcribed int       `json:"transcribed,omitempty"`
	Translated  int       `json:"translated,omitempty"`
	AudioPath   string    `json:"audio_path,omitempty"`
	SummaryPath string    `json:"summary_path,omitempty"`
}

// Duration returns the session length, zero if still open
func (s *Session) Duration() time.Duration {
	if s.EndedAt.IsZero() {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// SessionStore defines the interface for session persistence
type SessionStore interface {
	CreateSession(ctx context.Context, sess *Session) error
	FinishSession(ctx context.Context, sess *Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	ListSessions(ctx context.Context, limit int) ([]*Session, error)
	DeleteSession(ctx context.Context, id string) error
	Close() error
}

// SQLiteSessionStore implements SessionStore using SQLite
type SQLiteSessionStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Config holds configuration for the SQLite store
type Config struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/sessions.db",
	}
}

// NewSQLiteSessionStore creates a new SQLite-based session store
func NewSQLiteSessionStore(cfg Config) (*SQLiteSessionStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteSessionStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteSessionStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		model TEXT NOT NULL DEFAULT '',
		language TEXT NOT NULL DEFAULT '',
		started_at DATETIME NOT NULL,
		ended_at DATETIME,
		chunks INTEGER DEFAULT 0,
		transcribed INTEGER DEFAULT 0,
		translated INTEGER DEFAULT 0,
		audio_path TEXT NOT NULL DEFAULT '',
		summary_path TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_sessions_kind ON sessions(kind);
	`

	_, err := s.db.Exec(schema)
	return err
}

// CreateSession inserts a new session row. A missing ID is generated.
func (s *SQLiteSessionStore) CreateSession(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.Kind == "" {
		return fmt.Errorf("session kind is required")
	}
	if sess.StartedAt.IsZero() {
		sess.StartedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, kind, model, language, started_at, chunks, transcribed, translated, audio_path, summary_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sess.ID, sess.Kind, sess.Model, sess.Language, sess.StartedAt,
		sess.Chunks, sess.Transcribed, sess.Translated, sess.AudioPath, sess.SummaryPath)

	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FinishSession writes the final counters and end time for a session
func (s *SQLiteSessionStore) FinishSession(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.ID == "" {
		return fmt.Errorf("session ID is required")
	}
	if sess.EndedAt.IsZero() {
		sess.EndedAt = time.Now()
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions
		SET ended_at = ?, chunks = ?, transcribed = ?, translated = ?, audio_path = ?, summary_path = ?
		WHERE id = ?
	`, sess.EndedAt, sess.Chunks, sess.Transcribed, sess.Translated,
		sess.AudioPath, sess.SummaryPath, sess.ID)

	if err != nil {
		return fmt.Errorf("failed to finish session: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("session not found: %s", sess.ID)
	}
	return nil
}

// GetSession retrieves a session by ID, nil if not found
func (s *SQLiteSessionStore) GetSession(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, model, language, started_at, ended_at, chunks, transcribed, translated, audio_path, summary_path
		FROM sessions WHERE id = ?
	`, id)

	sess, err := scanSession(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return sess, nil
}

// ListSessions returns the most recent sessions, newest first
func (s *SQLiteSessionStore) ListSessions(ctx context.Context, limit int) ([]*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, model, language, started_at, ended_at, chunks, transcribed, translated, audio_path, summary_path
		FROM sessions ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session row
func (s *SQLiteSessionStore) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close closes the database
func (s *SQLiteSessionStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*Session, error) {
	var sess Session
	var endedAt sql.NullTime

	err := row.Scan(&sess.ID, &sess.Kind, &sess.Model, &sess.Language,
		&sess.StartedAt, &endedAt, &sess.Chunks, &sess.Transcribed,
		&sess.Translated, &sess.AudioPath, &sess.SummaryPath)
	if err != nil {
		return nil, err
	}
	if endedAt.Valid {
		sess.EndedAt = endedAt.Time
	}
	return &sess, nil
}
