package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Rrens/weather-advisor/internal/domain"
	"github.com/google/uuid"
)

// Store is an in-memory SessionStore. A read-write mutex guards the id
// map; each session carries its own mutex so concurrent appends to one
// session serialize without blocking unrelated sessions.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entry
}

type entry struct {
	mu      sync.Mutex
	session domain.Session
}

// NewStore creates an empty in-memory session store.
func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*entry)}
}

// Create allocates a new session. The session becomes visible to other
// operations only after it is fully built.
func (s *Store) Create(ctx context.Context, language domain.Language, location string, weather domain.WeatherSnapshot, firstSuggestion string) (*domain.Session, error) {
	now := time.Now()
	session := domain.Session{
		ID:        uuid.New(),
		Language:  language,
		Location:  location,
		Weather:   weather,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if firstSuggestion != "" {
		session.ChatHistory = []domain.Message{{
			Role:      domain.RoleAssistant,
			Content:   firstSuggestion,
			CreatedAt: now,
		}}
		session.LastSuggestion = firstSuggestion
	}

	s.mu.Lock()
	s.sessions[session.ID] = &entry{session: session}
	s.mu.Unlock()

	return clone(&session), nil
}

// Get returns a copy of the session.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return clone(&e.session), nil
}

// AppendMessage appends one message under the session's own lock so
// that concurrent appends keep admission order and none are lost.
func (s *Store) AppendMessage(ctx context.Context, id uuid.UUID, msg domain.Message) (*domain.Session, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.session.ChatHistory = append(e.session.ChatHistory, msg)
	if msg.Role == domain.RoleAssistant {
		e.session.LastSuggestion = msg.Content
	}
	e.session.UpdatedAt = time.Now()
	return clone(&e.session), nil
}

// UpdateWeather replaces the stored snapshot and location wholesale.
func (s *Store) UpdateWeather(ctx context.Context, id uuid.UUID, weather domain.WeatherSnapshot, location string) (*domain.Session, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.session.Weather = weather
	e.session.Location = location
	e.session.UpdatedAt = time.Now()
	return clone(&e.session), nil
}

// ClearHistory empties the chat history only. Unknown ids are a no-op.
func (s *Store) ClearHistory(ctx context.Context, id uuid.UUID) error {
	e, err := s.lookup(id)
	if err != nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.session.ChatHistory = nil
	e.session.LastSuggestion = ""
	e.session.UpdatedAt = time.Now()
	return nil
}

// Delete removes the session entirely.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

func (s *Store) lookup(id uuid.UUID) (*entry, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return e, nil
}

func clone(session *domain.Session) *domain.Session {
	copied := *session
	copied.ChatHistory = slices.Clone(session.ChatHistory)
	return &copied
}
