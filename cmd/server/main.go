package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Rrens/weather-advisor/internal/api"
	customMiddleware "github.com/Rrens/weather-advisor/internal/api/middleware"
	"github.com/Rrens/weather-advisor/internal/config"
	"github.com/Rrens/weather-advisor/internal/domain"
	"github.com/Rrens/weather-advisor/internal/llm"
	"github.com/Rrens/weather-advisor/internal/llm/gemini"
	"github.com/Rrens/weather-advisor/internal/llm/groq"
	"github.com/Rrens/weather-advisor/internal/location"
	"github.com/Rrens/weather-advisor/internal/repository/memory"
	"github.com/Rrens/weather-advisor/internal/repository/redis"
	"github.com/Rrens/weather-advisor/internal/repository/sqlite"
	"github.com/Rrens/weather-advisor/internal/service"
	"github.com/Rrens/weather-advisor/internal/transcribe/deepgram"
	"github.com/Rrens/weather-advisor/internal/weather"
	"github.com/Rrens/weather-advisor/internal/weather/weatherapi"
	"github.com/joho/godotenv"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file - try multiple locations
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.Logging)

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("Starting Weather Activity Advisor server")

	// Session store
	store, closeStore, err := newSessionStore(cfg.Session)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open session store")
	}
	defer closeStore()

	// Weather provider with LRU cache in front
	weatherProvider := weather.NewCachedProvider(
		weatherapi.NewClient(cfg.Weather.APIKey, cfg.Weather.BaseURL),
		cfg.Weather.CacheSize,
		cfg.Weather.CacheTTL,
	)

	// Suggestion providers
	llmRouter := llm.NewRouter(cfg.LLM.DefaultProvider)
	if cfg.LLM.Groq.APIKey != "" {
		llmRouter.RegisterProvider(groq.NewProvider(cfg.LLM.Groq.APIKey, cfg.LLM.Groq.Model, cfg.LLM.Groq.BaseURL, weatherProvider))
	}
	if cfg.LLM.Gemini.APIKey != "" {
		llmRouter.RegisterProvider(gemini.NewProvider(cfg.LLM.Gemini.APIKey, cfg.LLM.Gemini.Model, weatherProvider))
	}
	if providers := llmRouter.ListProviders(); len(providers) == 0 {
		log.Warn().Msg("No suggestion provider configured, suggestion endpoints will fail")
	} else {
		log.Info().Strs("providers", providers).Str("default", llmRouter.DefaultProvider()).Msg("Suggestion providers registered")
	}

	transcriber := deepgram.NewClient(cfg.Transcription.APIKey, cfg.Transcription.Model, "")

	conversations := service.NewConversationService(
		store,
		weatherProvider,
		llmRouter,
		transcriber,
		location.NewExtractor(),
	)

	// Rate limiter: Redis when available, in-process otherwise
	var limiter customMiddleware.Limiter
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		limiter = redis.NewRateLimiter(redisClient, cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	} else {
		limiter = customMiddleware.NewLocalLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	router := api.NewRouter(cfg, conversations, llmRouter, limiter)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func setupLogger(cfg config.LoggingConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var writers []io.Writer
	if cfg.Format == "console" {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		writers = append(writers, os.Stderr)
	}

	if cfg.File != "" {
		rotator, err := rotatelogs.New(
			cfg.File+".%Y%m%d",
			rotatelogs.WithLinkName(cfg.File),
			rotatelogs.WithRotationTime(24*time.Hour),
			rotatelogs.WithMaxAge(7*24*time.Hour),
		)
		if err != nil {
			log.Error().Err(err).Msg("Failed to open log file, logging to stderr only")
		} else {
			writers = append(writers, rotator)
		}
	}

	log.Logger = log.Output(zerolog.MultiLevelWriter(writers...))
}

func newSessionStore(cfg config.SessionConfig) (domain.SessionStore, func(), error) {
	switch cfg.Backend {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, nil, err
		}
		store, err := sqlite.NewStore(context.Background(), cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		return memory.NewStore(), func() {}, nil
	}
}
