package extractor

import (
	"regexp"
	"strings"

	"github.com/dealscout/backend/internal/domain"
)

// Normalized availability values.
const (
	InStock      = "In Stock"
	OutOfStock   = "Out of Stock"
	LimitedStock = "Limited Stock"
	PreOrder     = "Pre-order"
	Backorder    = "Backorder"
)

var (
	availabilityTextRegex = regexp.MustCompile(`(?i)\b(out of stock|currently unavailable|sold out|only \d+ left in stock|in stock|pre-?order)\b`)
	onlyLeftRegex         = regexp.MustCompile(`only \d+ left`)
	negatedStockRegex     = regexp.MustCompile(`\b(not|no longer) (currently )?(available|in stock)\b`)
)

var availabilityStrategies = []Strategy[string]{
	byStoreSelectors(func(c *domain.StoreConfig) []string { return c.AvailabilitySelectors }, nil, normalizeAvailability),
	byStructured(offerField("availability"), normalizeAvailability),
	bySelectors([]string{`[itemprop="availability"]`}, []string{"href", "content"}, normalizeAvailability),
	byMeta(normalizeAvailability, "product:availability", "og:availability"),
	byPatterns(normalizeAvailability, availabilityTextRegex),
}

// Availability extracts a normalized stock status.
func Availability(p *Page) (string, bool) {
	return FirstMatch(p, availabilityStrategies...)
}

// normalizeAvailability maps free text and schema.org values onto the fixed
// set of statuses. Unrecognized text is rejected.
func normalizeAvailability(raw string) (string, bool) {
	s := strings.ToLower(cleanText(raw))
	if s == "" || runeLen(s) > 200 {
		return "", false
	}
	compact := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)

	switch {
	case strings.Contains(compact, "outofstock"), strings.Contains(compact, "soldout"),
		strings.Contains(s, "unavailable"), strings.Contains(compact, "discontinued"),
		negatedStockRegex.MatchString(s):
		return OutOfStock, true
	case strings.Contains(compact, "preorder"), strings.Contains(compact, "presale"):
		return PreOrder, true
	case strings.Contains(compact, "backorder"):
		return Backorder, true
	case onlyLeftRegex.MatchString(s), strings.Contains(compact, "limitedavailability"),
		strings.Contains(compact, "lowstock"):
		return LimitedStock, true
	case strings.Contains(compact, "instock"), strings.Contains(compact, "instoreonly"),
		strings.Contains(s, "add to cart"), strings.Contains(s, "available"):
		return InStock, true
	}
	return "", false
}
