package location

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Extractor pulls a candidate place name out of free-form text. It is
// deterministic and side-effect free: an ordered list of pattern rules
// is tried in turn, and the first rule whose match survives validation
// wins. Validation accepts candidates from a curated city list
// (case-insensitive) or anything that looks like a proper noun.
type Extractor struct {
	rules []*regexp.Regexp
}

var (
	// Preposition followed by a capitalized phrase, terminated by
	// punctuation, end of input, or a common continuation word.
	prepositionRule = regexp.MustCompile(`(?i)\b(?:in|at|for|to)\s+([A-Za-z][a-zA-Z]+(?:\s+[A-Za-z][a-zA-Z]+)?)(?:\?|\.|,|$|\s+(?:today|tomorrow|now|should|can)\b)`)

	// Latin place name followed by a Japanese locative particle.
	particleRule = regexp.MustCompile(`([A-Za-z][a-zA-Z]+(?:\s+[A-Za-z][a-zA-Z]+)?)\s*(?:で|の|に|を)`)

	// Japanese city names written in kanji.
	japaneseCityRule = regexp.MustCompile(`(東京|大阪|京都|横浜|名古屋|福岡|札幌|仙台|広島|神戸)`)
)

// stopWords are common query words that the preposition rule can catch
// but are never place names.
var stopWords = map[string]bool{
	"what": true, "should": true, "do": true, "today": true,
	"tomorrow": true, "wear": true, "activities": true, "i": true,
	"can": true,
}

// knownCities is the curated validation list, lowercase.
var knownCities = map[string]bool{
	"tokyo": true, "new york": true, "london": true, "paris": true,
	"berlin": true, "moscow": true, "sydney": true, "melbourne": true,
	"toronto": true, "vancouver": true, "mumbai": true, "delhi": true,
	"bangalore": true, "singapore": true, "hong kong": true, "seoul": true,
	"beijing": true, "shanghai": true, "dubai": true, "istanbul": true,
	"cairo": true, "rio de janeiro": true, "sao paulo": true,
	"mexico city": true, "buenos aires": true, "los angeles": true,
	"chicago": true, "san francisco": true, "miami": true, "boston": true,
	"seattle": true, "denver": true, "phoenix": true, "dallas": true,
	"houston": true, "osaka": true, "kyoto": true, "yokohama": true,
	"nagoya": true, "fukuoka": true, "sapporo": true, "sendai": true,
	"hiroshima": true, "kobe": true,
	"東京": true, "大阪": true, "京都": true, "横浜": true, "名古屋": true,
	"福岡": true, "札幌": true, "仙台": true, "広島": true, "神戸": true,
}

// NewExtractor builds an extractor with the default rule set.
func NewExtractor() *Extractor {
	return &Extractor{
		rules: []*regexp.Regexp{prepositionRule, particleRule, japaneseCityRule},
	}
}

// Extract returns the first validated place name found in text, or
// false if no rule yields one. Empty or whitespace-only input yields
// false.
func (e *Extractor) Extract(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	for _, rule := range e.rules {
		m := rule.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if validate(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func validate(candidate string) bool {
	if utf8.RuneCountInString(candidate) < 2 {
		return false
	}
	lower := strings.ToLower(candidate)
	if stopWords[lower] {
		return false
	}
	if knownCities[lower] {
		return true
	}
	first, _ := utf8.DecodeRuneInString(candidate)
	return unicode.IsUpper(first)
}
