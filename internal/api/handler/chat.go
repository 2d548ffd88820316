package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Rrens/weather-advisor/internal/api/response"
	"github.com/Rrens/weather-advisor/internal/domain"
	"github.com/Rrens/weather-advisor/internal/service"
	"github.com/google/uuid"
)

// ChatHandler handles conversation turn endpoints
type ChatHandler struct {
	conversations *service.ConversationService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(conversations *service.ConversationService) *ChatHandler {
	return &ChatHandler{conversations: conversations}
}

// SuggestionRequest is the body of POST /suggestions
type SuggestionRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	Query     string `json:"query" validate:"required"`
	Language  string `json:"language"`
}

// FreeformRequest is the body of POST /freeform. SessionID is optional:
// without one a session is created from the text itself.
type FreeformRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,uuid"`
	Text      string `json:"text" validate:"required"`
	Language  string `json:"language"`
}

func turnPayload(result *service.TurnResult) map[string]any {
	payload := map[string]any{
		"session_id":      result.SessionID,
		"suggestion":      result.Suggestion,
		"chat_history":    result.ChatHistory,
		"weather_updated": result.WeatherUpdated,
		"model":           result.Model,
	}
	if result.Weather != nil {
		payload["weather"] = result.Weather
	}
	return payload
}

// Suggest handles a turn on an existing session
func (h *ChatHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req SuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	language, err := domain.ParseLanguage(req.Language)
	if err != nil {
		writeError(w, err)
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		response.BadRequest(w, "invalid session id")
		return
	}

	result, err := h.conversations.ContinueConversation(r.Context(), sessionID, req.Query, language)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, turnPayload(result))
}

// Freeform handles a turn that may or may not have a session yet,
// typically transcribed voice input or an example prompt.
func (h *ChatHandler) Freeform(w http.ResponseWriter, r *http.Request) {
	var req FreeformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	language, err := domain.ParseLanguage(req.Language)
	if err != nil {
		writeError(w, err)
		return
	}

	sessionID := uuid.Nil
	if req.SessionID != "" {
		if sessionID, err = uuid.Parse(req.SessionID); err != nil {
			response.BadRequest(w, "invalid session id")
			return
		}
	}

	result, err := h.conversations.HandleFreeformTurn(r.Context(), sessionID, req.Text, language)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, turnPayload(result))
}
