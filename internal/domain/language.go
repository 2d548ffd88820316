package domain

// Language is one of the closed set of supported UI languages.
type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageJapanese Language = "ja"
)

// ParseLanguage validates a language code. An empty code defaults to
// English.
func ParseLanguage(code string) (Language, error) {
	switch Language(code) {
	case "":
		return LanguageEnglish, nil
	case LanguageEnglish, LanguageJapanese:
		return Language(code), nil
	default:
		return "", ErrInvalidLanguage
	}
}

// SupportedLanguages lists all valid language codes.
func SupportedLanguages() []Language {
	return []Language{LanguageEnglish, LanguageJapanese}
}
