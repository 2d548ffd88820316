package deepgram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rrens/weather-advisor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listenBody(transcript string) map[string]any {
	return map[string]any{
		"results": map[string]any{
			"channels": []map[string]any{
				{"alternatives": []map[string]any{
					{"transcript": transcript, "confidence": 0.98},
				}},
			},
		},
	}
}

func TestClient_Transcribe(t *testing.T) {
	var gotRequest *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequest = r.Clone(context.Background())
		json.NewEncoder(w).Encode(listenBody("What should I wear in Tokyo?"))
	}))
	defer srv.Close()

	c := NewClient("test-key", "", srv.URL)
	transcript, err := c.Transcribe(context.Background(), []byte("audio-bytes"), "mp3", domain.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "What should I wear in Tokyo?", transcript)

	assert.Equal(t, "Token test-key", gotRequest.Header.Get("Authorization"))
	assert.Equal(t, "audio/mpeg", gotRequest.Header.Get("Content-Type"))
	q := gotRequest.URL.Query()
	assert.Equal(t, "nova-2", q.Get("model"))
	assert.Equal(t, "en", q.Get("language"))
	assert.Equal(t, "true", q.Get("smart_format"))
	assert.Equal(t, "true", q.Get("punctuate"))
}

func TestClient_Transcribe_NoSpeech(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(listenBody(""))
	}))
	defer srv.Close()

	c := NewClient("test-key", "", srv.URL)
	_, err := c.Transcribe(context.Background(), []byte("silence"), "wav", domain.LanguageEnglish)
	assert.ErrorIs(t, err, domain.ErrNoSpeechDetected)
}

func TestClient_Transcribe_EmptyAudio(t *testing.T) {
	c := NewClient("test-key", "", "")
	_, err := c.Transcribe(context.Background(), nil, "wav", domain.LanguageEnglish)
	assert.ErrorIs(t, err, domain.ErrNoSpeechDetected)
}

func TestClient_Transcribe_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"err_msg":"bad audio"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient("test-key", "", srv.URL)
	_, err := c.Transcribe(context.Background(), []byte("junk"), "mp3", domain.LanguageEnglish)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoSpeechDetected)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "audio/mpeg", contentType("mp3"))
	assert.Equal(t, "audio/mp4", contentType("M4A"))
	assert.Equal(t, "audio/webm", contentType(".webm"))
	assert.Equal(t, "audio/wav", contentType(""))
	assert.Equal(t, "audio/wav", contentType("xyz"))
}
