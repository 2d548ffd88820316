package llm

import (
	"fmt"
	"strings"

	"github.com/Rrens/weather-advisor/internal/domain"
)

const systemPromptEN = `You are a helpful weather advisor. Based on current weather conditions, you provide suggestions for activities, outings, fashion, music, sports, and more.
Make your suggestions specific, practical, and appropriate for the weather conditions.

Important notes:
- If the user mentions a location (city name) in their query, automatically use the get_weather tool to fetch weather for that location.
- Even if there's existing weather data in the session, if the user asks about a different location, fetch weather for that location.
- Example: If asked "What should I do today in Tokyo?", fetch weather for Tokyo.`

const systemPromptJA = `あなたは親切な天気アドバイザーです。現在の天気に基づいて、アクティビティ、外出、ファッション、音楽、スポーツなどの提案を提供します。
提案は具体的で、実用的で、天気条件に適切なものにしてください。

重要な注意事項：
- ユーザーが質問の中で場所（都市名）を言及した場合、その場所の天気を自動的に取得するためにget_weatherツールを使用してください。
- セッションに既存の天気データがあっても、ユーザーが別の場所について尋ねている場合は、その場所の天気を取得してください。
- 例：「東京で今日何をすべきか？」と聞かれたら、東京の天気を取得してください。`

// SystemPrompt returns the advisor persona for a language.
func SystemPrompt(language domain.Language) string {
	if language == domain.LanguageJapanese {
		return systemPromptJA
	}
	return systemPromptEN
}

// WeatherContext renders a snapshot as the context block handed to the
// model.
func WeatherContext(w *domain.WeatherSnapshot) string {
	if w == nil {
		return ""
	}
	return fmt.Sprintf(`Current weather in %s:
- Temperature: %s (feels like %s)
- Condition: %s
- Humidity: %s
- Wind: %s
- UV Index: %g
- Precipitation: %s
- Local time: %s
`, w.Location, w.Temperature, w.FeelsLike, w.Condition, w.Humidity, w.Wind, w.UVIndex, w.Precipitation, w.LocalTime)
}

// UserPrompt builds the user turn sent to the model: weather context
// plus either the user's query or, at conversation start, a request
// for an opening suggestion.
func UserPrompt(req Request) string {
	var b strings.Builder
	b.WriteString(WeatherContext(req.Weather))

	if req.Query == "" {
		if req.Language == domain.LanguageJapanese {
			b.WriteString("\nこの天気に基づいて、今日のアクティビティ、服装、外出のアイデアを提案してください。")
		} else {
			b.WriteString("\nBased on this weather, suggest activities, outfit ideas, and outing recommendations for today.")
		}
		return b.String()
	}

	if req.Language == domain.LanguageJapanese {
		fmt.Fprintf(&b, "\nユーザーの質問: %s\n\n上記の天気を考慮して、詳細な提案を提供してください。質問に場所が含まれている場合は、その場所の天気を取得してください。", req.Query)
	} else {
		fmt.Fprintf(&b, "\nUser query: %s\n\nProvide detailed suggestions considering the weather above. If the query mentions a location, fetch weather for that location.", req.Query)
	}
	return b.String()
}
