package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Rrens/weather-advisor/internal/domain"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store is a SessionStore backed by an embedded SQLite database. It
// implements the same interface as the in-memory store so the backing
// can be swapped through configuration. Message order is preserved by
// an autoincrement sequence; mutations run inside transactions, and
// sqlite's single-writer model serializes concurrent appends.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id              TEXT PRIMARY KEY,
	language        TEXT NOT NULL,
	location        TEXT NOT NULL,
	weather         TEXT NOT NULL,
	last_suggestion TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMP NOT NULL,
	updated_at      TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	role       TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id);
`

// NewStore opens (or creates) the database at path and applies the
// schema.
func NewStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Create(ctx context.Context, language domain.Language, location string, weather domain.WeatherSnapshot, firstSuggestion string) (*domain.Session, error) {
	weatherJSON, err := json.Marshal(weather)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal weather: %w", err)
	}

	now := time.Now()
	id := uuid.New()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (id, language, location, weather, last_suggestion, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id.String(), string(language), location, string(weatherJSON), firstSuggestion, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if firstSuggestion != "" {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO messages (session_id, role, content, created_at)
			VALUES (?, ?, ?, ?)`,
			id.String(), string(domain.RoleAssistant), firstSuggestion, now,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to record first suggestion: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit session: %w", err)
	}

	return s.Get(ctx, id)
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	session, err := s.getSession(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT role, content, created_at
		FROM messages
		WHERE session_id = ?
		ORDER BY seq ASC`,
		id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var msg domain.Message
		var role string
		if err := rows.Scan(&role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Role = domain.MessageRole(role)
		session.ChatHistory = append(session.ChatHistory, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	return session, nil
}

func (s *Store) AppendMessage(ctx context.Context, id uuid.UUID, msg domain.Message) (*domain.Session, error) {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.getSession(ctx, tx, id); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO messages (session_id, role, content, created_at)
		VALUES (?, ?, ?, ?)`,
		id.String(), string(msg.Role), msg.Content, msg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}

	if msg.Role == domain.RoleAssistant {
		_, err = tx.ExecContext(ctx,
			`UPDATE sessions SET last_suggestion = ?, updated_at = ? WHERE id = ?`,
			msg.Content, time.Now(), id.String(),
		)
	} else {
		_, err = tx.ExecContext(ctx,
			`UPDATE sessions SET updated_at = ? WHERE id = ?`,
			time.Now(), id.String(),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit message: %w", err)
	}

	return s.Get(ctx, id)
}

func (s *Store) UpdateWeather(ctx context.Context, id uuid.UUID, weather domain.WeatherSnapshot, location string) (*domain.Session, error) {
	weatherJSON, err := json.Marshal(weather)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal weather: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET weather = ?, location = ?, updated_at = ? WHERE id = ?`,
		string(weatherJSON), location, time.Now(), id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update weather: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrSessionNotFound
	}

	return s.Get(ctx, id)
}

func (s *Store) ClearHistory(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	// Unknown ids fall through as a no-op.
	if _, err := tx.ExecContext(ctx,
		`UPDATE sessions SET last_suggestion = '', updated_at = ? WHERE id = ?`,
		time.Now(), id.String(),
	); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) getSession(ctx context.Context, q querier, id uuid.UUID) (*domain.Session, error) {
	var (
		session     domain.Session
		idStr       string
		language    string
		weatherJSON string
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, language, location, weather, last_suggestion, created_at, updated_at
		FROM sessions
		WHERE id = ?`,
		id.String(),
	).Scan(&idStr, &language, &session.Location, &weatherJSON, &session.LastSuggestion, &session.CreatedAt, &session.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse session id: %w", err)
	}
	session.Language = domain.Language(language)
	if err := json.Unmarshal([]byte(weatherJSON), &session.Weather); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weather: %w", err)
	}

	return &session, nil
}
