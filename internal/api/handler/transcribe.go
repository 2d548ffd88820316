package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Rrens/weather-advisor/internal/api/response"
	"github.com/Rrens/weather-advisor/internal/domain"
	"github.com/Rrens/weather-advisor/internal/service"
)

// 25 MB, generous for a voice clip.
const maxAudioBytes = 25 << 20

// TranscribeHandler handles voice input transcription
type TranscribeHandler struct {
	conversations *service.ConversationService
}

// NewTranscribeHandler creates a new transcription handler
func NewTranscribeHandler(conversations *service.ConversationService) *TranscribeHandler {
	return &TranscribeHandler{conversations: conversations}
}

// Transcribe accepts a multipart audio upload and returns the
// transcript. Silence is reported in the payload, not as an error, so
// the client can prompt the user to retry.
func (h *TranscribeHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "missing audio file")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes))
	if err != nil {
		response.InternalError(w, "failed to read audio file")
		return
	}

	language, err := domain.ParseLanguage(r.FormValue("language"))
	if err != nil {
		writeError(w, err)
		return
	}

	format := strings.TrimPrefix(filepath.Ext(header.Filename), ".")

	transcript, err := h.conversations.Transcribe(r.Context(), audio, format, language)
	if err != nil {
		if errors.Is(err, domain.ErrNoSpeechDetected) {
			response.OK(w, map[string]any{
				"transcript": nil,
				"success":    false,
				"message":    "no speech detected",
			})
			return
		}
		response.BadGateway(w, "transcription service is unavailable")
		return
	}

	response.OK(w, map[string]any{
		"transcript": transcript,
		"success":    true,
	})
}
