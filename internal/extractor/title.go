package extractor

import (
	"regexp"
	"strings"

	"github.com/dealscout/backend/internal/domain"
)

const (
	minTitleLength = 11
	maxTitleLength = 400
)

var (
	amazonTitleSpanRegex = regexp.MustCompile(`(?is)<span[^>]*id=["']productTitle["'][^>]*>(.*?)</span>`)
	amazonTitleJSONRegex = regexp.MustCompile(`"(?:productTitle|title)"\s*:\s*"([^"\\]{11,400})"`)
	titleTagRegex        = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

	// "Amazon.com: NAME : Category" and "NAME : Amazon.com : Category"
	amazonPrefixTitleRegex = regexp.MustCompile(`(?i)^amazon\.[a-z.]+\s*:\s*(.+?)(?:\s*:\s+[^:]*)?$`)
	amazonSuffixTitleRegex = regexp.MustCompile(`(?i)^(.+?)\s*:\s*amazon\.[a-z.]+\b`)

	siteSuffixRegex = regexp.MustCompile(`(?i)\s*[|\-–:]\s*(?:walmart\.com|walmart|target|best\s*buy|ebay|the\s+home\s+depot|home\s+depot|amazon\.[a-z.]+)\s*$`)
	bareDomainRegex = regexp.MustCompile(`^(?:www\.)?[a-z0-9-]+(?:\.[a-z]{2,})+$`)
)

var genericTitles = map[string]bool{
	"amazon": true, "amazon.com": true, "walmart": true, "walmart.com": true,
	"target": true, "best buy": true, "ebay": true, "home depot": true,
	"the home depot": true, "loading": true, "error": true, "not found": true,
	"page not found": true, "404": true, "robot check": true, "access denied": true,
	"attention required": true, "untitled": true, "home": true, "sorry": true,
}

var genericTitleFragments = []string{
	"page not found",
	"robot check",
	"access denied",
	"are you a human",
	"something went wrong",
	"online shopping for",
	"enter the characters you see",
	"just a moment",
	"captcha",
}

var titleStrategies = []Strategy[string]{
	byStoreSelectors(func(c *domain.StoreConfig) []string { return c.TitleSelectors }, nil, normalizeTitle),
	onlyFor(domain.StoreAmazon, amazonTitle),
	byMeta(normalizeTitle, "og:title", "twitter:title"),
	byStructured(productField("name"), normalizeTitle),
	bySelectors([]string{"h1"}, nil, normalizeTitle),
	byStructured(titleTag, normalizeTitle),
}

// Title extracts the product title.
func Title(p *Page) (string, bool) {
	return FirstMatch(p, titleStrategies...)
}

// amazonTitle works on raw markup so it survives pages the parser mangles
func amazonTitle(p *Page) (string, bool) {
	if v, ok := byPatterns(normalizeTitle, amazonTitleSpanRegex, amazonTitleJSONRegex)(p); ok {
		return v, true
	}
	m := titleTagRegex.FindStringSubmatch(p.HTML)
	if len(m) < 2 {
		return "", false
	}
	tag := cleanText(m[1])
	for _, re := range []*regexp.Regexp{amazonPrefixTitleRegex, amazonSuffixTitleRegex} {
		if parts := re.FindStringSubmatch(tag); len(parts) > 1 {
			if v, ok := normalizeTitle(parts[1]); ok {
				return v, true
			}
		}
	}
	return "", false
}

func titleTag(p *Page) []string {
	return []string{p.Document().Find("title").First().Text()}
}

func normalizeTitle(raw string) (string, bool) {
	s := cleanText(raw)
	s = siteSuffixRegex.ReplaceAllString(s, "")
	s = trimDecoration(s)
	if n := runeLen(s); n < minTitleLength || n > maxTitleLength {
		return "", false
	}
	if IsGenericTitle(s) {
		return "", false
	}
	return s, true
}

// IsGenericTitle reports whether a title is a placeholder, error page or bare
// site name rather than a product name.
func IsGenericTitle(title string) bool {
	lower := strings.ToLower(strings.TrimSpace(title))
	if lower == "" {
		return true
	}
	if genericTitles[lower] || genericTitles[strings.TrimRight(lower, ".!… ")] {
		return true
	}
	if bareDomainRegex.MatchString(lower) {
		return true
	}
	if strings.HasPrefix(lower, "error") || strings.HasPrefix(lower, "loading") {
		return true
	}
	for _, fragment := range genericTitleFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}
