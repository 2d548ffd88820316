package transcribe

import (
	"context"

	"github.com/Rrens/weather-advisor/internal/domain"
)

// Provider transcribes recorded audio into text. An empty transcript
// is reported as domain.ErrNoSpeechDetected so callers can distinguish
// silence from transport failures.
type Provider interface {
	Transcribe(ctx context.Context, audio []byte, format string, language domain.Language) (string, error)
}
