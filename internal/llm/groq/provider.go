package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Rrens/weather-advisor/internal/domain"
	"github.com/Rrens/weather-advisor/internal/llm"
	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.3-70b-versatile"

	// Bound on the reason/act loop when the model keeps requesting
	// weather lookups.
	maxToolIterations = 3
)

// Provider implements llm.Provider against Groq's OpenAI-compatible
// chat completions API. The get_weather tool is executed locally
// through the injected fetcher.
type Provider struct {
	apiKey  string
	model   string
	client  *openai.Client
	weather llm.WeatherFetcher
}

// NewProvider creates a Groq provider. Empty model and baseURL select
// the defaults.
func NewProvider(apiKey, model, baseURL string, fetcher llm.WeatherFetcher) *Provider {
	if model == "" {
		model = defaultModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	return &Provider{
		apiKey:  apiKey,
		model:   model,
		client:  openai.NewClientWithConfig(cfg),
		weather: fetcher,
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return "groq"
}

// DefaultModel returns the default model
func (p *Provider) DefaultModel() string {
	return p.model
}

// IsConfigured checks if provider has valid credentials
func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

var weatherTool = openai.Tool{
	Type: openai.ToolTypeFunction,
	Function: &openai.FunctionDefinition{
		Name:        "get_weather",
		Description: "Get current weather information for a specific location. Use this tool when the user mentions a location (city name) in their query, even if it's different from the current session location.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"location": {
					"type": "string",
					"description": "The city name or location to get weather for (e.g., 'Tokyo', 'New York', 'London')"
				}
			},
			"required": ["location"]
		}`),
	},
}

// GenerateSuggestion runs the chat completion, executing get_weather
// tool calls until the model produces a final answer.
func (p *Provider) GenerateSuggestion(ctx context.Context, req llm.Request, model string) (*llm.Response, error) {
	if model == "" {
		model = p.model
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: llm.SystemPrompt(req.Language)},
	}
	for _, msg := range req.History {
		role := openai.ChatMessageRoleUser
		if msg.Role == domain.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: llm.UserPrompt(req),
	})

	var (
		change      *llm.LocationChange
		totalTokens int
	)
	start := time.Now()

	for iteration := 0; iteration < maxToolIterations; iteration++ {
		resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       model,
			Messages:    messages,
			Tools:       []openai.Tool{weatherTool},
			Temperature: 0.7,
			MaxTokens:   1000,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrSuggestionUnavailable, err)
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("%w: empty response from groq", domain.ErrSuggestionUnavailable)
		}

		totalTokens += resp.Usage.TotalTokens
		msg := resp.Choices[0].Message

		if len(msg.ToolCalls) == 0 {
			return &llm.Response{
				Text:           msg.Content,
				Model:          model,
				TokensUsed:     totalTokens,
				LatencyMs:      time.Since(start).Milliseconds(),
				LocationChange: change,
			}, nil
		}

		messages = append(messages, msg)
		for _, call := range msg.ToolCalls {
			result, fetched := p.executeTool(ctx, call)
			if fetched != nil {
				change = fetched
			}
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				ToolCallID: call.ID,
				Name:       call.Function.Name,
				Content:    result,
			})
		}
	}

	return nil, fmt.Errorf("%w: tool loop exceeded %d iterations", domain.ErrSuggestionUnavailable, maxToolIterations)
}

// executeTool runs a single tool call and returns the tool result
// content plus the location change when a fetch succeeded. Fetch
// failures are reported back to the model rather than aborting the
// generation.
func (p *Provider) executeTool(ctx context.Context, call openai.ToolCall) (string, *llm.LocationChange) {
	if call.Function.Name != "get_weather" {
		return fmt.Sprintf("Error: unknown tool %q", call.Function.Name), nil
	}

	var args struct {
		Location string `json:"location"`
	}
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil || args.Location == "" {
		return "Error: invalid get_weather arguments", nil
	}

	snapshot, err := p.weather.Fetch(ctx, args.Location)
	if err != nil {
		return fmt.Sprintf("Error fetching weather for %s: %v", args.Location, err), nil
	}

	return llm.WeatherContext(snapshot), &llm.LocationChange{
		Location: args.Location,
		Weather:  snapshot,
	}
}
