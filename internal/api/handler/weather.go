package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Rrens/weather-advisor/internal/api/response"
	"github.com/Rrens/weather-advisor/internal/domain"
	"github.com/Rrens/weather-advisor/internal/service"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// WeatherHandler handles weather lookup and conversation bootstrap
// endpoints
type WeatherHandler struct {
	conversations *service.ConversationService
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(conversations *service.ConversationService) *WeatherHandler {
	return &WeatherHandler{conversations: conversations}
}

// WeatherRequest is the body of POST /weather and
// POST /weather-with-suggestions
type WeatherRequest struct {
	Location string `json:"location" validate:"required"`
	Language string `json:"language"`
}

// Get returns current weather for a location without creating a
// session
func (h *WeatherHandler) Get(w http.ResponseWriter, r *http.Request) {
	var req WeatherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	snapshot, err := h.conversations.FetchWeather(r.Context(), req.Location)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, map[string]any{"weather": snapshot})
}

// Bootstrap starts a conversation: weather plus the opening suggestion
func (h *WeatherHandler) Bootstrap(w http.ResponseWriter, r *http.Request) {
	var req WeatherRequest
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

	result, err := h.conversations.Bootstrap(r.Context(), req.Location, language)
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, map[string]any{
		"session_id": result.SessionID,
		"weather":    result.Weather,
		"suggestion": result.Suggestion,
		"model":      result.Model,
	})
}
