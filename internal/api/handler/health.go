package handler

import (
	"net/http"

	"github.com/Rrens/weather-advisor/internal/api/response"
	"github.com/Rrens/weather-advisor/internal/llm"
)

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}

// ListProviders returns the configured suggestion providers
func ListProviders(router *llm.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]any{
			"providers": router.ListProviders(),
			"default":   router.DefaultProvider(),
		})
	}
}
