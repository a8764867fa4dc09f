package extractor

import (
	"regexp"
	"strings"

	"github.com/dealscout/backend/internal/domain"
)

var (
	brandPattern       = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 &'.+\-]{0,49}$`)
	brandPrefixRegex   = regexp.MustCompile(`(?i)^(?:visit\s+the\s+|brand\s*:\s*|by\s+)`)
	brandStoreRegex    = regexp.MustCompile(`(?i)\s+store$`)
	brandDenyFragments = []string{
		"customer", "visit", "review", "click", "sign in", "see more", "shop now",
		"learn more", "http", "rating", "stars", "add to", "unknown", "generic", "n/a",
	}
)

var brandStrategies = []Strategy[string]{
	byStoreSelectors(func(c *domain.StoreConfig) []string { return c.BrandSelectors }, nil, normalizeBrand),
	byStructured(productField("brand"), normalizeBrand),
	byMeta(normalizeBrand, "product:brand", "og:brand", "brand"),
	bySelectors([]string{`[itemprop="brand"] [itemprop="name"]`, `[itemprop="brand"]`}, []string{"content"}, normalizeBrand),
}

// Brand extracts the product brand.
func Brand(p *Page) (string, bool) {
	return FirstMatch(p, brandStrategies...)
}

// normalizeBrand strips byline decoration like "Visit the Sony Store" and
// rejects anything that does not look like a short brand name.
func normalizeBrand(raw string) (string, bool) {
	s := cleanText(raw)
	s = brandPrefixRegex.ReplaceAllString(s, "")
	s = brandStoreRegex.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	if runeLen(s) < 2 || !brandPattern.MatchString(s) {
		return "", false
	}
	lower := strings.ToLower(s)
	for _, fragment := range brandDenyFragments {
		if strings.Contains(lower, fragment) {
			return "", false
		}
	}
	return s, true
}
