package extractor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/dealscout/backend/internal/domain"
	"github.com/shopspring/decimal"
)

// PriceInfo holds normalized decimal price strings. Empty means not found.
type PriceInfo struct {
	Current  string
	Original string
}

var (
	maxPrice     = decimal.NewFromInt(1_000_000)
	maxScanPrice = decimal.NewFromInt(100_000)

	amazonCurrentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?s)apexPriceToPay.{0,400}?class="a-offscreen">\s*\$?\s*([\d,]+(?:\.\d{1,2})?)`),
		regexp.MustCompile(`"priceAmount"\s*:\s*([\d.]+)`),
		regexp.MustCompile(`"displayPrice"\s*:\s*"\$?([\d,]+(?:\.\d{1,2})?)"`),
		regexp.MustCompile(`class="a-offscreen">\s*\$?\s*([\d,]+(?:\.\d{1,2})?)`),
	}
	amazonOriginalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`class="a-text-strike">\s*\$?\s*([\d,]+(?:\.\d{1,2})?)`),
		regexp.MustCompile(`(?s)"basisPrice".{0,200}?\$([\d,]+\.\d{2})`),
		regexp.MustCompile(`(?i)list\s*price:?\s*(?:<[^>]+>\s*)*\$([\d,]+(?:\.\d{1,2})?)`),
		regexp.MustCompile(`(?i)\bwas:?\s*(?:<[^>]+>\s*)*\$([\d,]+(?:\.\d{1,2})?)`),
	}

	dollarAmountRegex = regexp.MustCompile(`\$\s?(\d{1,3}(?:,\d{3})+(?:\.\d{2})?|\d+(?:\.\d{2})?)`)
)

var currentPriceStrategies = []Strategy[string]{
	byStoreSelectors(func(c *domain.StoreConfig) []string { return c.PriceSelectors }, []string{"content"}, normalizePrice),
	onlyFor(domain.StoreAmazon, byPatterns(normalizePrice, amazonCurrentPatterns...)),
	byMeta(normalizePrice, "product:price:amount", "og:price:amount", "price"),
	bySelectors([]string{"[itemprop=price]"}, []string{"content"}, normalizePrice),
	byStructured(offerField("price"), normalizePrice),
}

var originalPriceStrategies = []Strategy[string]{
	byStoreSelectors(func(c *domain.StoreConfig) []string { return c.OriginalPriceSelectors }, nil, normalizePrice),
	onlyFor(domain.StoreAmazon, byPatterns(normalizePrice, amazonOriginalPatterns...)),
	bySelectors([]string{".compare-at-price", ".price--compare", ".was-price", ".price-was"}, nil, normalizePrice),
}

// Prices extracts the current and original price. The original price is
// resolved independently of the current one; when no current price is found
// the page is scanned for dollar amounts as a last resort.
func Prices(p *Page) PriceInfo {
	var info PriceInfo
	info.Current, _ = FirstMatch(p, currentPriceStrategies...)
	info.Original, _ = FirstMatch(p, originalPriceStrategies...)

	if info.Current == "" {
		amounts := scanDollarAmounts(p.HTML)
		if len(amounts) > 0 {
			info.Current = amounts[0].StringFixed(2)
			if info.Original == "" && len(amounts) > 1 {
				info.Original = amounts[len(amounts)-1].StringFixed(2)
			}
		}
	}
	return info
}

// normalizePrice accepts text such as "$1,299.00" or "19.99" and returns a
// two-decimal string for a positive amount.
func normalizePrice(raw string) (string, bool) {
	s := cleanText(raw)
	if s == "" || runeLen(s) > 64 {
		return "", false
	}
	num, ok := firstNumber(s)
	if !ok {
		return "", false
	}
	d, err := decimal.NewFromString(num)
	if err != nil || !d.IsPositive() || d.GreaterThanOrEqual(maxPrice) {
		return "", false
	}
	return d.StringFixed(2), true
}

// scanDollarAmounts returns distinct positive amounts found in html, ascending
func scanDollarAmounts(html string) []decimal.Decimal {
	seen := make(map[string]bool)
	var out []decimal.Decimal
	for _, m := range dollarAmountRegex.FindAllStringSubmatch(html, 500) {
		d, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
		if err != nil || !d.IsPositive() || d.GreaterThanOrEqual(maxScanPrice) {
			continue
		}
		key := d.StringFixed(2)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LessThan(out[j]) })
	return out
}
