package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rrens/weather-advisor/internal/domain"
	"github.com/Rrens/weather-advisor/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	calls []string
	err   error
}

func (f *stubFetcher) Fetch(ctx context.Context, location string) (*domain.WeatherSnapshot, error) {
	f.calls = append(f.calls, location)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.WeatherSnapshot{Location: location + ", Somewhere", Condition: "Cloudy"}, nil
}

func completionText(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
		"usage": map[string]any{"total_tokens": 42},
	}
}

func completionToolCall(location string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{
				"role": "assistant",
				"tool_calls": []map[string]any{
					{
						"id":   "call_1",
						"type": "function",
						"function": map[string]any{
							"name":      "get_weather",
							"arguments": `{"location": "` + location + `"}`,
						},
					},
				},
			}},
		},
		"usage": map[string]any{"total_tokens": 10},
	}
}

func TestProvider_GenerateSuggestion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(completionText("Take a walk in the park."))
	}))
	defer srv.Close()

	fetcher := &stubFetcher{}
	p := NewProvider("test-key", "", srv.URL, fetcher)

	resp, err := p.GenerateSuggestion(context.Background(), llm.Request{
		Language: domain.LanguageEnglish,
		Weather:  &domain.WeatherSnapshot{Location: "Tokyo, Japan", Condition: "Sunny"},
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "Take a walk in the park.", resp.Text)
	assert.Equal(t, 42, resp.TokensUsed)
	assert.Nil(t, resp.LocationChange)
	assert.Empty(t, fetcher.calls)
}

func TestProvider_GenerateSuggestion_ToolCall(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			json.NewEncoder(w).Encode(completionToolCall("London"))
			return
		}
		json.NewEncoder(w).Encode(completionText("Pack an umbrella for London."))
	}))
	defer srv.Close()

	fetcher := &stubFetcher{}
	p := NewProvider("test-key", "", srv.URL, fetcher)

	resp, err := p.GenerateSuggestion(context.Background(), llm.Request{
		Query:    "What about tomorrow in London?",
		Language: domain.LanguageEnglish,
		Weather:  &domain.WeatherSnapshot{Location: "Tokyo, Japan"},
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "Pack an umbrella for London.", resp.Text)
	require.NotNil(t, resp.LocationChange)
	assert.Equal(t, "London", resp.LocationChange.Location)
	assert.Equal(t, "Cloudy", resp.LocationChange.Weather.Condition)
	assert.Equal(t, []string{"London"}, fetcher.calls)
	assert.Equal(t, 52, resp.TokensUsed)
}

func TestProvider_GenerateSuggestion_ToolFetchFailure(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			json.NewEncoder(w).Encode(completionToolCall("Atlantis"))
			return
		}
		// The model recovers after seeing the tool error.
		json.NewEncoder(w).Encode(completionText("I could not find that place."))
	}))
	defer srv.Close()

	fetcher := &stubFetcher{err: domain.ErrWeatherUnavailable}
	p := NewProvider("test-key", "", srv.URL, fetcher)

	resp, err := p.GenerateSuggestion(context.Background(), llm.Request{
		Query:    "Weather in Atlantis?",
		Language: domain.LanguageEnglish,
	}, "")
	require.NoError(t, err)
	assert.Nil(t, resp.LocationChange)
	assert.Equal(t, "I could not find that place.", resp.Text)
}

func TestProvider_GenerateSuggestion_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewProvider("test-key", "", srv.URL, &stubFetcher{})
	_, err := p.GenerateSuggestion(context.Background(), llm.Request{Language: domain.LanguageEnglish}, "")
	assert.ErrorIs(t, err, domain.ErrSuggestionUnavailable)
}

func TestProvider_GenerateSuggestion_ToolLoopBound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Always demand another tool call.
		json.NewEncoder(w).Encode(completionToolCall("Tokyo"))
	}))
	defer srv.Close()

	p := NewProvider("test-key", "", srv.URL, &stubFetcher{})
	_, err := p.GenerateSuggestion(context.Background(), llm.Request{Language: domain.LanguageEnglish}, "")
	assert.ErrorIs(t, err, domain.ErrSuggestionUnavailable)
}

func TestProvider_IsConfigured(t *testing.T) {
	assert.True(t, NewProvider("key", "", "", &stubFetcher{}).IsConfigured())
	assert.False(t, NewProvider("", "", "", &stubFetcher{}).IsConfigured())
	assert.Equal(t, "groq", NewProvider("key", "", "", &stubFetcher{}).Name())
	assert.Equal(t, defaultModel, NewProvider("key", "", "", &stubFetcher{}).DefaultModel())
}
