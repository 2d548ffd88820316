package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/weather-advisor/internal/domain"
	"github.com/Rrens/weather-advisor/internal/llm"
	"github.com/Rrens/weather-advisor/internal/location"
	"github.com/Rrens/weather-advisor/internal/transcribe"
	"github.com/Rrens/weather-advisor/internal/weather"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// defaultLocations is used when a session must be created from free
// text that names no recognizable place.
var defaultLocations = map[domain.Language]string{
	domain.LanguageEnglish:  "New York",
	domain.LanguageJapanese: "Tokyo",
}

// ConversationService owns the conversation state machine: session
// bootstrap, turn handling, and the supporting weather/suggestion/
// transcription calls.
type ConversationService struct {
	store       domain.SessionStore
	weather     weather.Provider
	llmRouter   *llm.Router
	transcriber transcribe.Provider
	extractor   *location.Extractor
}

// NewConversationService creates a new conversation service
func NewConversationService(
	store domain.SessionStore,
	weatherProvider weather.Provider,
	llmRouter *llm.Router,
	transcriber transcribe.Provider,
	extractor *location.Extractor,
) *ConversationService {
	return &ConversationService{
		store:       store,
		weather:     weatherProvider,
		llmRouter:   llmRouter,
		transcriber: transcriber,
		extractor:   extractor,
	}
}

// BootstrapResult is the outcome of starting a conversation.
type BootstrapResult struct {
	SessionID  uuid.UUID
	Weather    *domain.WeatherSnapshot
	Suggestion string
	Model      string
}

// TurnResult is the outcome of one conversation turn.
type TurnResult struct {
	SessionID      uuid.UUID
	Suggestion     string
	ChatHistory    []domain.Message
	WeatherUpdated bool
	Weather        *domain.WeatherSnapshot
	Model          string
}

// FetchWeather looks up current weather without touching any session.
func (s *ConversationService) FetchWeather(ctx context.Context, loc string) (*domain.WeatherSnapshot, error) {
	return s.weather.Fetch(ctx, loc)
}

// Bootstrap starts a conversation: fetch weather for the location,
// generate the opening suggestion, and create the session with that
// suggestion as the first assistant message. Either a fully populated
// session is returned or no session exists at all.
func (s *ConversationService) Bootstrap(ctx context.Context, loc string, language domain.Language) (*BootstrapResult, error) {
	snapshot, err := s.weather.Fetch(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather for %q: %w", loc, err)
	}

	provider, err := s.llmRouter.GetProvider("")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSuggestionUnavailable, err)
	}

	resp, err := provider.GenerateSuggestion(ctx, llm.Request{
		Language: language,
		Weather:  snapshot,
	}, "")
	if err != nil {
		return nil, fmt.Errorf("failed to generate opening suggestion: %w", err)
	}

	session, err := s.store.Create(ctx, language, loc, *snapshot, resp.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info().
		Str("session_id", session.ID.String()).
		Str("location", loc).
		Str("language", string(language)).
		Str("model", resp.Model).
		Int("tokens", resp.TokensUsed).
		Int64("latency_ms", resp.LatencyMs).
		Msg("conversation bootstrapped")

	return &BootstrapResult{
		SessionID:  session.ID,
		Weather:    snapshot,
		Suggestion: resp.Text,
		Model:      resp.Model,
	}, nil
}

// ContinueConversation handles one turn on an existing session.
func (s *ConversationService) ContinueConversation(ctx context.Context, sessionID uuid.UUID, text string, language domain.Language) (*TurnResult, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if language == "" {
		language = session.Language
	}
	return s.continueTurn(ctx, session, text, language)
}

// HandleFreeformTurn handles a turn that may or may not have an
// existing session. Without one, a session is created from the
// location mentioned in the text (or the language default) and the
// same text is then answered through the existing-session path.
func (s *ConversationService) HandleFreeformTurn(ctx context.Context, sessionID uuid.UUID, text string, language domain.Language) (*TurnResult, error) {
	if sessionID != uuid.Nil {
		session, err := s.store.Get(ctx, sessionID)
		if err == nil {
			return s.continueTurn(ctx, session, text, language)
		}
		// Unknown ids fall through to session creation; expired
		// sessions should not strand the user's turn.
		log.Warn().Str("session_id", sessionID.String()).Msg("freeform turn referenced unknown session, creating a new one")
	}

	loc, found := s.extractor.Extract(text)
	if !found {
		loc = defaultLocations[language]
	}

	snapshot, err := s.weather.Fetch(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather for %q: %w", loc, err)
	}

	// The session is created without an opening suggestion so the
	// replayed turn below yields a history of exactly the user's text
	// and its answer.
	session, err := s.store.Create(ctx, language, loc, *snapshot, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.continueTurn(ctx, session, text, language)
}

// continueTurn appends the user message, generates a suggestion from
// the stored weather and full prior history, applies any location
// change the provider resolved on its own, and appends the assistant
// message. A generation failure leaves the user message recorded and
// the history otherwise untouched.
func (s *ConversationService) continueTurn(ctx context.Context, session *domain.Session, text string, language domain.Language) (*TurnResult, error) {
	now := time.Now()
	updated, err := s.store.AppendMessage(ctx, session.ID, domain.Message{
		Role:      domain.RoleUser,
		Content:   text,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	provider, err := s.llmRouter.GetProvider("")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSuggestionUnavailable, err)
	}

	weatherSnapshot := updated.Weather
	resp, err := provider.GenerateSuggestion(ctx, llm.Request{
		Query:    text,
		Language: language,
		Weather:  &weatherSnapshot,
		History:  updated.ChatHistory[:len(updated.ChatHistory)-1],
	}, "")
	if err != nil {
		return nil, fmt.Errorf("failed to generate suggestion: %w", err)
	}

	result := &TurnResult{
		SessionID: session.ID,
		Weather:   &weatherSnapshot,
		Model:     resp.Model,
	}

	if change := resp.LocationChange; change != nil && !strings.EqualFold(change.Location, updated.Location) {
		if _, err := s.store.UpdateWeather(ctx, session.ID, *change.Weather, change.Location); err != nil {
			log.Error().Err(err).Str("session_id", session.ID.String()).Msg("failed to store updated weather")
		} else {
			result.WeatherUpdated = true
			result.Weather = change.Weather
			log.Info().
				Str("session_id", session.ID.String()).
				Str("location", change.Location).
				Msg("session location updated from suggestion")
		}
	}

	final, err := s.store.AppendMessage(ctx, session.ID, domain.Message{
		Role:      domain.RoleAssistant,
		Content:   resp.Text,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	result.Suggestion = resp.Text
	result.ChatHistory = final.ChatHistory
	return result, nil
}

// GetSession returns a copy of the session.
func (s *ConversationService) GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.Session, error) {
	return s.store.Get(ctx, sessionID)
}

// ClearChat empties the chat history; weather, location and language
// are kept. Clearing an unknown session is a no-op.
func (s *ConversationService) ClearChat(ctx context.Context, sessionID uuid.UUID) error {
	return s.store.ClearHistory(ctx, sessionID)
}

// DeleteSession removes the session entirely.
func (s *ConversationService) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	return s.store.Delete(ctx, sessionID)
}

// Transcribe converts recorded audio into text.
func (s *ConversationService) Transcribe(ctx context.Context, audio []byte, format string, language domain.Language) (string, error) {
	return s.transcriber.Transcribe(ctx, audio, format, language)
}
