package usecase

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dealscout/backend/internal/domain"
	"github.com/dealscout/backend/internal/extractor"
	"github.com/dealscout/backend/internal/store"
)

var (
	asinRegex = regexp.MustCompile(`(?:dp|gp/product|gp/aw/d)/([A-Z0-9]{10})(?:[/?#]|$)`)
	slugRegex = regexp.MustCompile(`^[A-Za-z0-9]+(?:[-_][A-Za-z0-9]+)+$`)
)

// brandPrefixes maps lowercase title prefixes to canonical brand names.
// Longer prefixes must come before shorter ones sharing a start.
var brandPrefixes = []struct {
	prefix string
	brand  string
}{
	{"amazon basics", "Amazon Basics"},
	{"amazonbasics", "Amazon Basics"},
	{"amazon essentials", "Amazon Essentials"},
	{"amazon commercial", "Amazon Commercial"},
	{"amazon aware", "Amazon Aware"},
	{"solimo", "Solimo"},
	{"goodthreads", "Goodthreads"},
	{"great value", "Great Value"},
	{"mainstays", "Mainstays"},
	{"equate", "Equate"},
	{"up & up", "up & up"},
	{"threshold", "Threshold"},
	{"insignia", "Insignia"},
	{"kirkland signature", "Kirkland Signature"},
}

// BuildURLFallback derives a partial record from the URL alone. It is used
// when the page could not be fetched or yielded no usable data.
func BuildURLFallback(rawURL string, detection store.Detection) *domain.ProductRecord {
	record := domain.NewProductRecord()
	record.Source = domain.SourceURLFallback
	record.IsStoreDetected = detection.Detected()
	record.Store = domain.StringPtr(detection.DisplayName())
	record.ProductID = domain.StringPtr(ProductIDFromURL(rawURL))

	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return record
	}

	title := humanizeSlug(productSlug(u.Path))
	if title == "" {
		return record
	}
	record.Title = domain.StringPtr(title)
	record.Brand = domain.StringPtr(brandFromTitle(title))
	if category, ok := extractor.CategoryFromText(title); ok {
		record.Category = domain.StringPtr(category)
	}

	return record
}

// ProductIDFromURL returns the 10 character Amazon ASIN in rawURL, or ""
func ProductIDFromURL(rawURL string) string {
	m := asinRegex.FindStringSubmatch(rawURL)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// productSlug picks the path segment naming the product: the one before an
// Amazon "dp" or "gp/product" marker, else the last slug-shaped segment.
// Any name-like segment is taken before a marker, single words included.
func productSlug(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")

	for i, seg := range segments {
		if i == 0 {
			continue
		}
		isMarker := seg == "dp" || (seg == "gp" && i+1 < len(segments) && segments[i+1] == "product")
		if isMarker && hasAlphanumeric(segments[i-1]) {
			return segments[i-1]
		}
	}

	for i := len(segments) - 1; i >= 0; i-- {
		if slugRegex.MatchString(segments[i]) && wordyTokens(segments[i]) >= 2 {
			return segments[i]
		}
	}
	return ""
}

// wordyTokens counts slug tokens containing at least two letters
func wordyTokens(slug string) int {
	n := 0
	for _, tok := range splitSlug(slug) {
		letters := 0
		for _, r := range tok {
			if unicode.IsLetter(r) {
				letters++
			}
		}
		if letters >= 2 {
			n++
		}
	}
	return n
}

func hasAlphanumeric(seg string) bool {
	return strings.IndexFunc(seg, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) >= 0
}

func splitSlug(slug string) []string {
	return strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' })
}

// humanizeSlug turns "amazon-basics-plastic-hangers" into "Amazon Basics Plastic Hangers"
func humanizeSlug(slug string) string {
	tokens := splitSlug(slug)
	for i, tok := range tokens {
		r, size := utf8.DecodeRuneInString(tok)
		tokens[i] = string(unicode.ToUpper(r)) + tok[size:]
	}
	return strings.Join(tokens, " ")
}

func brandFromTitle(title string) string {
	lower := strings.ToLower(title)
	for _, entry := range brandPrefixes {
		if strings.HasPrefix(lower, entry.prefix+" ") || lower == entry.prefix {
			return entry.brand
		}
	}
	return ""
}
