package api

import (
	"net/http"
	"time"

	"github.com/Rrens/weather-advisor/internal/api/handler"
	customMiddleware "github.com/Rrens/weather-advisor/internal/api/middleware"
	"github.com/Rrens/weather-advisor/internal/config"
	"github.com/Rrens/weather-advisor/internal/llm"
	"github.com/Rrens/weather-advisor/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	cfg *config.Config,
	conversations *service.ConversationService,
	llmRouter *llm.Router,
	limiter customMiddleware.Limiter,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	weatherHandler := handler.NewWeatherHandler(conversations)
	chatHandler := handler.NewChatHandler(conversations)
	sessionHandler := handler.NewSessionHandler(conversations)
	transcribeHandler := handler.NewTranscribeHandler(conversations)

	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(limiter)

	r.Route("/api/v1", func(r chi.Router) {
		// Health and static lookups
		r.Get("/health", handler.HealthCheck)
		r.Get("/providers", handler.ListProviders(llmRouter))
		r.Get("/translations/{language}", handler.Translations)
		r.Get("/examples/{language}", handler.Examples)

		// Rate-limited conversation surface
		r.Group(func(r chi.Router) {
			r.Use(rateLimitMiddleware.Limit)

			r.Post("/weather", weatherHandler.Get)
			r.Post("/weather-with-suggestions", weatherHandler.Bootstrap)
			r.Post("/suggestions", chatHandler.Suggest)
			r.Post("/freeform", chatHandler.Freeform)
			r.Post("/transcribe", transcribeHandler.Transcribe)

			r.Route("/session/{sessionID}", func(r chi.Router) {
				r.Get("/", sessionHandler.Get)
				r.Delete("/", sessionHandler.Delete)
				r.Delete("/chat", sessionHandler.ClearChat)
			})
		})
	})

	return r
}
