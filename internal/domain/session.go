package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MessageRole represents the sender of a message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is a single turn in a session's chat history. Immutable once
// appended.
type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// Session is the unit of conversation state: one user's interaction
// sequence, keyed by an opaque id. A session always carries a resolved
// location and a weather snapshot; creation is atomic with the first
// weather fetch.
type Session struct {
	ID             uuid.UUID       `json:"id"`
	Language       Language        `json:"language"`
	Location       string          `json:"location"`
	Weather        WeatherSnapshot `json:"weather"`
	ChatHistory    []Message       `json:"chat_history"`
	LastSuggestion string          `json:"last_suggestion"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// SessionStore owns all session state. Implementations must keep
// creation atomic (no half-built session observable), serialize
// concurrent appends to the same session, and hand out copies so
// callers cannot mutate stored history.
type SessionStore interface {
	// Create allocates a new session with the given weather snapshot.
	// If firstSuggestion is non-empty it is recorded as the opening
	// assistant message; otherwise the history starts empty.
	Create(ctx context.Context, language Language, location string, weather WeatherSnapshot, firstSuggestion string) (*Session, error)

	// Get returns a copy of the session or ErrSessionNotFound.
	Get(ctx context.Context, id uuid.UUID) (*Session, error)

	// AppendMessage appends one message to the session's history and
	// returns the updated session. Appends to the same session are
	// serialized; ordering matches admission order.
	AppendMessage(ctx context.Context, id uuid.UUID, msg Message) (*Session, error)

	// UpdateWeather replaces the session's weather snapshot and
	// location atomically.
	UpdateWeather(ctx context.Context, id uuid.UUID, weather WeatherSnapshot, location string) (*Session, error)

	// ClearHistory empties the chat history, leaving weather, location
	// and language untouched. Clearing an unknown id is a no-op.
	ClearHistory(ctx context.Context, id uuid.UUID) error

	// Delete removes the session entirely. Lifecycle hook for expiry.
	Delete(ctx context.Context, id uuid.UUID) error
}
