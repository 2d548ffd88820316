package domain

import "errors"

// Sentinel errors for the conversation core. Handlers match these with
// errors.Is to choose HTTP status codes; providers wrap their transport
// failures around ErrWeatherUnavailable / ErrSuggestionUnavailable.
var (
	ErrSessionNotFound       = errors.New("session not found")
	ErrWeatherUnavailable    = errors.New("weather unavailable")
	ErrSuggestionUnavailable = errors.New("suggestion unavailable")
	ErrNoSpeechDetected      = errors.New("no speech detected")
	ErrInvalidLanguage       = errors.New("unsupported language")
)
