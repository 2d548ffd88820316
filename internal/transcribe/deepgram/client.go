package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Rrens/weather-advisor/internal/domain"
)

const (
	defaultBaseURL = "https://api.deepgram.com/v1"
	defaultModel   = "nova-2"
)

// contentTypes maps audio file extensions to the content type Deepgram
// expects. Unknown extensions fall back to audio/wav.
var contentTypes = map[string]string{
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"flac": "audio/flac",
	"m4a":  "audio/mp4",
	"ogg":  "audio/ogg",
	"opus": "audio/opus",
	"webm": "audio/webm",
}

// Client implements transcribe.Provider against the Deepgram listen
// API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewClient creates a Deepgram client. Empty model and baseURL select
// the defaults.
func NewClient(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// IsConfigured checks if the client has valid credentials
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

type listenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string  `json:"transcript"`
				Confidence float64 `json:"confidence"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// Transcribe sends the audio bytes to Deepgram and returns the
// transcript of the first channel alternative.
func (c *Client) Transcribe(ctx context.Context, audio []byte, format string, language domain.Language) (string, error) {
	if len(audio) == 0 {
		return "", domain.ErrNoSpeechDetected
	}

	params := url.Values{}
	params.Set("model", c.model)
	params.Set("language", string(language))
	params.Set("smart_format", "true")
	params.Set("punctuate", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/listen?"+params.Encode(), bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("failed to build transcription request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", contentType(format))

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call transcription API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("transcription API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result listenResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}

	if len(result.Results.Channels) == 0 || len(result.Results.Channels[0].Alternatives) == 0 {
		return "", domain.ErrNoSpeechDetected
	}
	transcript := result.Results.Channels[0].Alternatives[0].Transcript
	if strings.TrimSpace(transcript) == "" {
		return "", domain.ErrNoSpeechDetected
	}

	return transcript, nil
}

func contentType(format string) string {
	if ct, ok := contentTypes[strings.ToLower(strings.TrimPrefix(format, "."))]; ok {
		return ct
	}
	return "audio/wav"
}
