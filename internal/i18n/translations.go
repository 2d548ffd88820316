// Package i18n holds the UI strings and example prompts served to
// clients per language.
package i18n

import "github.com/Rrens/weather-advisor/internal/domain"

var translations = map[domain.Language]map[string]string{
	domain.LanguageEnglish: {
		"title":                "🌤️ Weather Activity Advisor",
		"subtitle":             "Get personalized activity suggestions based on real-time weather",
		"location_input":       "Enter your location (city name)",
		"location_placeholder": "e.g., Tokyo, New York, London",
		"get_weather":          "Get Weather & Suggestions",
		"voice_input":          "🎤 Voice Input",
		"chat_input":           "Ask me anything about activities, fashion, or plans...",
		"example_prompts":      "Example Prompts:",
		"weather_info":         "Current Weather Information",
		"suggestions":          "AI Suggestions",
		"chat_history":         "Chat History",
		"clear_chat":           "Clear Chat",
		"error":                "Error",
		"weather_fetch_error":  "Could not fetch weather data. Please check the location.",
		"language":             "Language",
	},
	domain.LanguageJapanese: {
		"title":                "🌤️ 天気アクティビティアドバイザー",
		"subtitle":             "リアルタイムの天気に基づいてパーソナライズされたアクティビティ提案を取得",
		"location_input":       "場所を入力してください（都市名）",
		"location_placeholder": "例：東京、大阪、札幌",
		"get_weather":          "天気と提案を取得",
		"voice_input":          "🎤 音声入力",
		"chat_input":           "アクティビティ、ファッション、プランについて何でも聞いてください...",
		"example_prompts":      "例のプロンプト：",
		"weather_info":         "現在の気象情報",
		"suggestions":          "AI提案",
		"chat_history":         "チャット履歴",
		"clear_chat":           "チャットをクリア",
		"error":                "エラー",
		"weather_fetch_error":  "天気データを取得できませんでした。場所を確認してください。",
		"language":             "言語",
	},
}

var examplePrompts = map[domain.Language][]string{
	domain.LanguageEnglish: {
		"What should I wear today?",
		"Best time to go outside?",
		"Indoor activities for this weather?",
		"Recommended sports for this weather?",
	},
	domain.LanguageJapanese: {
		"今日は何を着ればいいですか？",
		"外出するのに良い時間は？",
		"雨が降るので、室内でできることは？",
		"この天気でおすすめのスポーツは？",
	},
}

// Translations returns the UI string table for a language.
func Translations(lang domain.Language) map[string]string {
	return translations[lang]
}

// ExamplePrompts returns the canned prompts shown to new users.
func ExamplePrompts(lang domain.Language) []string {
	return examplePrompts[lang]
}
