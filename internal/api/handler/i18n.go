package handler

import (
	"net/http"

	"github.com/Rrens/weather-advisor/internal/api/response"
	"github.com/Rrens/weather-advisor/internal/domain"
	"github.com/Rrens/weather-advisor/internal/i18n"
	"github.com/go-chi/chi/v5"
)

// Translations returns the UI string table for a language
func Translations(w http.ResponseWriter, r *http.Request) {
	language, err := domain.ParseLanguage(chi.URLParam(r, "language"))
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, i18n.Translations(language))
}

// Examples returns the example prompts for a language
func Examples(w http.ResponseWriter, r *http.Request) {
	language, err := domain.ParseLanguage(chi.URLParam(r, "language"))
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, map[string]any{"examples": i18n.ExamplePrompts(language)})
}
