package llm

import (
	"context"

	"github.com/Rrens/weather-advisor/internal/domain"
)

// Request contains suggestion generation parameters. Query is empty
// for the opening suggestion at conversation start. History carries
// prior turns only; the current query rides in Query.
type Request struct {
	Query    string
	Language domain.Language
	Weather  *domain.WeatherSnapshot
	History  []domain.Message
}

// LocationChange signals that the provider resolved weather for a
// location on its own (via the get_weather tool) while generating the
// suggestion. The fetched snapshot rides along so the caller can store
// it without a second fetch.
type LocationChange struct {
	Location string
	Weather  *domain.WeatherSnapshot
}

// Response contains the generation result.
type Response struct {
	Text           string
	Model          string
	TokensUsed     int
	LatencyMs      int64
	LocationChange *LocationChange
}

// WeatherFetcher resolves weather for locations the model asks about
// through the get_weather tool. Satisfied by weather.Provider.
type WeatherFetcher interface {
	Fetch(ctx context.Context, location string) (*domain.WeatherSnapshot, error)
}

// Provider defines the interface for suggestion providers.
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// GenerateSuggestion produces an activity suggestion for the given
	// weather, language and chat history. Failures are reported as
	// domain.ErrSuggestionUnavailable.
	GenerateSuggestion(ctx context.Context, req Request, model string) (*Response, error)
}
