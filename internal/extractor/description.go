package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dealscout/backend/internal/domain"
)

const (
	minDescriptionLength = 20
	maxDescriptionLength = 2000

	// MaxDescriptionLength is the length a record description is truncated to.
	MaxDescriptionLength = 500
)

var descriptionStrategies = []Strategy[string]{
	onlyFor(domain.StoreAmazon, amazonFeatureBullets),
	byStoreSelectors(func(c *domain.StoreConfig) []string { return c.DescriptionSelectors }, nil, normalizeDescription),
	byMeta(normalizeDescription, "og:description", "description", "twitter:description"),
	byStructured(productField("description"), normalizeDescription),
}

// Description extracts a product description. Amazon feature bullets are
// rendered one per line with a bullet prefix.
func Description(p *Page) (string, bool) {
	return FirstMatch(p, descriptionStrategies...)
}

func amazonFeatureBullets(p *Page) (string, bool) {
	var b strings.Builder
	p.Document().Find("#feature-bullets ul li span.a-list-item").Each(func(_ int, s *goquery.Selection) {
		text := cleanText(s.Text())
		if text == "" || isBlockedText(text) {
			return
		}
		line := "• " + text
		if runeLen(b.String())+runeLen(line)+1 > maxDescriptionLength {
			return
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(line)
	})
	out := b.String()
	if runeLen(out) < minDescriptionLength {
		return "", false
	}
	return out, true
}

func normalizeDescription(raw string) (string, bool) {
	s := cleanText(raw)
	if n := runeLen(s); n < minDescriptionLength || n > maxDescriptionLength {
		return "", false
	}
	if isBlockedText(s) {
		return "", false
	}
	return s, true
}

// SynthesizeDescription builds a short promotional sentence for records
// without an extracted description. It returns "" when there is no title.
func SynthesizeDescription(title, storeName string) string {
	title = strings.TrimSpace(title)
	storeName = strings.TrimSpace(storeName)
	switch {
	case title == "":
		return ""
	case storeName == "":
		return fmt.Sprintf("Check out this deal on %s!", title)
	default:
		return fmt.Sprintf("Check out this deal on %s at %s!", title, storeName)
	}
}

// TruncateDescription shortens s to MaxDescriptionLength runes.
func TruncateDescription(s string) string {
	return truncate(s, MaxDescriptionLength)
}
