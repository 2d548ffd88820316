package handler

import (
	"errors"
	"net/http"

	"github.com/Rrens/weather-advisor/internal/api/response"
	"github.com/Rrens/weather-advisor/internal/domain"
)

// writeError maps domain errors to HTTP status codes. Upstream
// provider failures surface as 502 so clients can distinguish them
// from their own bad requests.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		response.NotFound(w, "session not found")
	case errors.Is(err, domain.ErrInvalidLanguage):
		response.BadRequest(w, "unsupported language")
	case errors.Is(err, domain.ErrWeatherUnavailable):
		response.BadGateway(w, "could not fetch weather data, please check the location")
	case errors.Is(err, domain.ErrSuggestionUnavailable):
		response.BadGateway(w, "suggestion service is unavailable")
	default:
		response.InternalError(w, err.Error())
	}
}
