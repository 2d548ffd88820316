package handler

import (
	"net/http"

	"github.com/Rrens/weather-advisor/internal/api/response"
	"github.com/Rrens/weather-advisor/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SessionHandler handles session lifecycle endpoints
type SessionHandler struct {
	conversations *service.ConversationService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(conversations *service.ConversationService) *SessionHandler {
	return &SessionHandler{conversations: conversations}
}

func sessionID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	return id, err == nil
}

// Get returns the full session state
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(r)
	if !ok {
		response.BadRequest(w, "invalid session id")
		return
	}

	session, err := h.conversations.GetSession(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, session)
}

// ClearChat empties the session's chat history; weather and location
// are kept
func (h *SessionHandler) ClearChat(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(r)
	if !ok {
		response.BadRequest(w, "invalid session id")
		return
	}

	if err := h.conversations.ClearChat(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, map[string]string{"message": "chat history cleared"})
}

// Delete removes the session
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(r)
	if !ok {
		response.BadRequest(w, "invalid session id")
		return
	}

	if err := h.conversations.DeleteSession(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	response.NoContent(w)
}
