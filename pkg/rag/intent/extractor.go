package intent

import (
	"regexp"
	"strconv"
	"strings"

	"kuliner-chatbot-be/internal/constant"
)

// QueryIntent is derived from a single query and never persisted.
type QueryIntent struct {
	Count        int
	MealCategory string
	City         string
}

var countPattern = regexp.MustCompile(`\b(\d+)\b|\b(satu|dua|tiga|empat|lima|enam|tujuh|delapan|sembilan|sepuluh)\b`)

// Extractor turns free text into a QueryIntent. It is rule based and never fails.
type Extractor struct {
	cities      []string
	defaultCity string
}

func NewExtractor(cities []string, defaultCity string) *Extractor {
	normalized := make([]string, 0, len(cities))
	for _, c := range cities {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			normalized = append(normalized, c)
		}
	}
	return &Extractor{
		cities:      normalized,
		defaultCity: defaultCity,
	}
}

// Extract reads count, meal category and city from query. currentTime is "HH:MM".
func (e *Extractor) Extract(query string, currentTime string) QueryIntent {
	lower := strings.ToLower(query)
	return QueryIntent{
		Count:        ExtractCount(lower),
		MealCategory: ExtractMealCategory(lower, currentTime),
		City:         e.extractCity(lower),
	}
}

// ExtractCount returns the leftmost numeral or number word, clamped to [1,10].
func ExtractCount(query string) int {
	m := countPattern.FindStringSubmatch(strings.ToLower(query))
	if m == nil {
		return constant.DefaultRecommendationCount
	}
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// Only overflow gets here; anything that long is above the cap.
			return constant.MaxRecommendationCount
		}
		return clamp(n)
	}
	return clamp(constant.NumberWords[m[2]])
}

func clamp(n int) int {
	if n < constant.MinRecommendationCount {
		return constant.MinRecommendationCount
	}
	if n > constant.MaxRecommendationCount {
		return constant.MaxRecommendationCount
	}
	return n
}

// ExtractMealCategory prefers keywords over the clock.
func ExtractMealCategory(query string, currentTime string) string {
	lower := strings.ToLower(query)
	for _, mk := range constant.MealKeywords {
		for _, kw := range mk.Keywords {
			if strings.Contains(lower, kw) {
				return mk.Category
			}
		}
	}
	return MealCategoryForTime(currentTime)
}

// MealCategoryForTime buckets the hour: <10 breakfast, <15 lunch, <18 snack, else dinner.
// Unparsable input lands in the lunch bucket.
func MealCategoryForTime(currentTime string) string {
	hourPart, _, _ := strings.Cut(strings.TrimSpace(currentTime), ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return constant.MealLunch
	}
	switch {
	case hour < 10:
		return constant.MealBreakfast
	case hour < 15:
		return constant.MealLunch
	case hour < 18:
		return constant.MealSnack
	default:
		return constant.MealDinner
	}
}

func (e *Extractor) extractCity(lower string) string {
	for _, city := range e.cities {
		if strings.Contains(lower, city) {
			return capitalize(city)
		}
	}
	return e.defaultCity
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
