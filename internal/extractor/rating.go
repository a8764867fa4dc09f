package extractor

import (
	"regexp"
	"strings"

	"github.com/dealscout/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// RatingInfo holds the average rating on a five point scale and the review count.
type RatingInfo struct {
	Value       string
	ReviewCount string
}

var (
	maxRating = decimal.NewFromInt(5)

	outOfFiveRegex   = regexp.MustCompile(`(?i)(\d(?:\.\d{1,2})?)\s*out\s+of\s+5\s+stars`)
	reviewCountRegex = regexp.MustCompile(`(?i)([\d,]+)\s+(?:global\s+)?(?:ratings|reviews|customer\s+reviews)\b`)
)

var ratingStrategies = []Strategy[string]{
	byStoreSelectors(func(c *domain.StoreConfig) []string { return c.RatingSelectors }, []string{"title", "aria-label", "content"}, normalizeRating),
	byPatterns(normalizeRating, outOfFiveRegex),
	bySelectors([]string{`[itemprop="ratingValue"]`}, []string{"content"}, normalizeRating),
	byStructured(ratingField("ratingValue"), normalizeRating),
}

var reviewCountStrategies = []Strategy[string]{
	byStoreSelectors(func(c *domain.StoreConfig) []string { return c.ReviewCountSelectors }, []string{"content", "aria-label"}, normalizeCount),
	bySelectors([]string{`[itemprop="reviewCount"]`, `[itemprop="ratingCount"]`}, []string{"content"}, normalizeCount),
	byStructured(ratingField("reviewCount", "ratingCount"), normalizeCount),
	byPatterns(normalizeCount, reviewCountRegex),
}

// Rating extracts the average rating and review count. Either may be empty.
func Rating(p *Page) RatingInfo {
	var info RatingInfo
	info.Value, _ = FirstMatch(p, ratingStrategies...)
	info.ReviewCount, _ = FirstMatch(p, reviewCountStrategies...)
	return info
}

func normalizeRating(raw string) (string, bool) {
	s := cleanText(raw)
	if s == "" || runeLen(s) > 80 {
		return "", false
	}
	num, ok := firstNumber(s)
	if !ok {
		return "", false
	}
	d, err := decimal.NewFromString(num)
	if err != nil || d.IsNegative() || d.GreaterThan(maxRating) {
		return "", false
	}
	return d.String(), true
}

func normalizeCount(raw string) (string, bool) {
	s := cleanText(raw)
	if s == "" || runeLen(s) > 80 {
		return "", false
	}
	num, ok := firstNumber(s)
	if !ok || strings.Contains(num, ".") {
		return "", false
	}
	num = strings.TrimLeft(num, "0")
	if num == "" {
		return "", false
	}
	return num, true
}
