package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/Rrens/weather-advisor/internal/domain"
	"github.com/Rrens/weather-advisor/internal/llm"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const maxToolIterations = 3

// Provider implements llm.Provider for Google Gemini.
type Provider struct {
	apiKey  string
	model   string
	weather llm.WeatherFetcher
}

func NewProvider(apiKey, model string, fetcher llm.WeatherFetcher) *Provider {
	return &Provider{
		apiKey:  apiKey,
		model:   model,
		weather: fetcher,
	}
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) DefaultModel() string {
	if p.model != "" {
		return p.model
	}
	return "gemini-2.5-flash"
}

func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

var weatherTool = &genai.Tool{
	FunctionDeclarations: []*genai.FunctionDeclaration{{
		Name:        "get_weather",
		Description: "Get current weather information for a specific location. Use this tool when the user mentions a location (city name) in their query, even if it's different from the current session location.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"location": {
					Type:        genai.TypeString,
					Description: "The city name or location to get weather for (e.g., 'Tokyo', 'New York', 'London')",
				},
			},
			Required: []string{"location"},
		},
	}},
}

func (p *Provider) GenerateSuggestion(ctx context.Context, req llm.Request, model string) (*llm.Response, error) {
	if !p.IsConfigured() {
		return nil, fmt.Errorf("%w: gemini provider is not configured (missing API key)", domain.ErrSuggestionUnavailable)
	}

	if model == "" {
		model = p.DefaultModel()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v", domain.ErrSuggestionUnavailable, err)
	}
	defer client.Close()

	generativeModel := client.GenerativeModel(model)
	var temperature float32 = 0.7
	generativeModel.Temperature = &temperature
	generativeModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(llm.SystemPrompt(req.Language))},
	}
	generativeModel.Tools = []*genai.Tool{weatherTool}

	chat := generativeModel.StartChat()
	for _, msg := range req.History {
		role := "user"
		if msg.Role == domain.RoleAssistant {
			role = "model"
		}
		chat.History = append(chat.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	var (
		change      *llm.LocationChange
		totalTokens int
	)
	start := time.Now()

	resp, err := chat.SendMessage(ctx, genai.Text(llm.UserPrompt(req)))
	for iteration := 0; iteration < maxToolIterations; iteration++ {
		if err != nil {
			return nil, fmt.Errorf("%w: gemini generation error: %v", domain.ErrSuggestionUnavailable, err)
		}
		if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
			return nil, fmt.Errorf("%w: empty response from gemini", domain.ErrSuggestionUnavailable)
		}
		if resp.UsageMetadata != nil {
			totalTokens += int(resp.UsageMetadata.TotalTokenCount)
		}

		var (
			text      string
			toolCalls []genai.FunctionCall
		)
		for _, part := range resp.Candidates[0].Content.Parts {
			switch v := part.(type) {
			case genai.Text:
				text += string(v)
			case genai.FunctionCall:
				toolCalls = append(toolCalls, v)
			}
		}

		if len(toolCalls) == 0 {
			return &llm.Response{
				Text:           text,
				Model:          model,
				TokensUsed:     totalTokens,
				LatencyMs:      time.Since(start).Milliseconds(),
				LocationChange: change,
			}, nil
		}

		responses := make([]genai.Part, 0, len(toolCalls))
		for _, call := range toolCalls {
			result, fetched := p.executeTool(ctx, call)
			if fetched != nil {
				change = fetched
			}
			responses = append(responses, genai.FunctionResponse{
				Name:     call.Name,
				Response: map[string]any{"weather": result},
			})
		}
		resp, err = chat.SendMessage(ctx, responses...)
	}

	return nil, fmt.Errorf("%w: tool loop exceeded %d iterations", domain.ErrSuggestionUnavailable, maxToolIterations)
}

func (p *Provider) executeTool(ctx context.Context, call genai.FunctionCall) (string, *llm.LocationChange) {
	if call.Name != "get_weather" {
		return fmt.Sprintf("Error: unknown tool %q", call.Name), nil
	}

	location, _ := call.Args["location"].(string)
	if location == "" {
		return "Error: invalid get_weather arguments", nil
	}

	snapshot, err := p.weather.Fetch(ctx, location)
	if err != nil {
		return fmt.Sprintf("Error fetching weather for %s: %v", location, err), nil
	}

	return llm.WeatherContext(snapshot), &llm.LocationChange{
		Location: location,
		Weather:  snapshot,
	}
}
