package llm

import (
	"strings"
	"testing"

	"github.com/Rrens/weather-advisor/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sampleWeather() *domain.WeatherSnapshot {
	return &domain.WeatherSnapshot{
		Location:      "Tokyo, Japan",
		Temperature:   "22.5°C / 72.5°F",
		FeelsLike:     "24°C",
		Condition:     "Sunny",
		Humidity:      "55%",
		Wind:          "13.3 km/h SW",
		UVIndex:       6,
		Precipitation: "0 mm",
		LocalTime:     "2024-05-01 14:30",
	}
}

func TestSystemPrompt(t *testing.T) {
	en := SystemPrompt(domain.LanguageEnglish)
	assert.Contains(t, en, "weather advisor")
	assert.Contains(t, en, "get_weather")

	ja := SystemPrompt(domain.LanguageJapanese)
	assert.Contains(t, ja, "天気アドバイザー")
	assert.Contains(t, ja, "get_weather")
}

func TestWeatherContext(t *testing.T) {
	ctx := WeatherContext(sampleWeather())
	assert.Contains(t, ctx, "Current weather in Tokyo, Japan")
	assert.Contains(t, ctx, "Temperature: 22.5°C / 72.5°F (feels like 24°C)")
	assert.Contains(t, ctx, "Condition: Sunny")
	assert.Contains(t, ctx, "UV Index: 6")

	assert.Empty(t, WeatherContext(nil))
}

func TestUserPrompt(t *testing.T) {
	t.Run("opening suggestion without query", func(t *testing.T) {
		got := UserPrompt(Request{Language: domain.LanguageEnglish, Weather: sampleWeather()})
		assert.True(t, strings.HasPrefix(got, "Current weather in Tokyo, Japan"))
		assert.Contains(t, got, "suggest activities, outfit ideas")
		assert.NotContains(t, got, "User query")
	})

	t.Run("with query", func(t *testing.T) {
		got := UserPrompt(Request{
			Query:    "What should I wear?",
			Language: domain.LanguageEnglish,
			Weather:  sampleWeather(),
		})
		assert.Contains(t, got, "User query: What should I wear?")
	})

	t.Run("japanese", func(t *testing.T) {
		got := UserPrompt(Request{
			Query:    "何を着ればいい？",
			Language: domain.LanguageJapanese,
			Weather:  sampleWeather(),
		})
		assert.Contains(t, got, "ユーザーの質問: 何を着ればいい？")
	})
}
