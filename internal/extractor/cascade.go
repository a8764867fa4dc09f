package extractor

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/dealscout/backend/internal/domain"
)

// Strategy extracts one candidate value from a page. ok is false when the
// strategy found nothing acceptable.
type Strategy[T any] func(p *Page) (value T, ok bool)

// FirstMatch runs strategies in order and returns the first accepted value.
func FirstMatch[T any](p *Page, strategies ...Strategy[T]) (T, bool) {
	for _, strategy := range strategies {
		if v, ok := strategy(p); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Normalizer cleans a raw candidate and decides whether it is acceptable.
type Normalizer func(raw string) (string, bool)

// onlyFor restricts a strategy to pages of one store
func onlyFor(key domain.StoreKey, s Strategy[string]) Strategy[string] {
	return func(p *Page) (string, bool) {
		if p.Store != key {
			return "", false
		}
		return s(p)
	}
}

// bySelectors tries each selector in order and every element it matches,
// reading the element text and then the listed attributes.
func bySelectors(selectors []string, attrs []string, norm Normalizer) Strategy[string] {
	return func(p *Page) (string, bool) {
		return firstFromSelectors(p, selectors, attrs, norm)
	}
}

// byStoreSelectors is bySelectors over a selector list taken from the store config
func byStoreSelectors(pick func(*domain.StoreConfig) []string, attrs []string, norm Normalizer) Strategy[string] {
	return func(p *Page) (string, bool) {
		return firstFromSelectors(p, p.storeSelectors(pick), attrs, norm)
	}
}

func firstFromSelectors(p *Page, selectors []string, attrs []string, norm Normalizer) (string, bool) {
	doc := p.Document()
	for _, sel := range selectors {
		var (
			found string
			ok    bool
		)
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if found, ok = norm(s.Text()); ok {
				return false
			}
			for _, attr := range attrs {
				if v, exists := s.Attr(attr); exists {
					if found, ok = norm(v); ok {
						return false
					}
				}
			}
			return true
		})
		if ok {
			return found, true
		}
	}
	return "", false
}

// byMeta reads <meta> content by property, name or itemprop
func byMeta(norm Normalizer, keys ...string) Strategy[string] {
	return func(p *Page) (string, bool) {
		doc := p.Document()
		for _, key := range keys {
			for _, attr := range []string{"property", "name", "itemprop"} {
				content, exists := doc.Find(`meta[` + attr + `="` + key + `"]`).First().Attr("content")
				if !exists {
					continue
				}
				if v, ok := norm(content); ok {
					return v, true
				}
			}
		}
		return "", false
	}
}

// byPatterns scans the raw HTML with each pattern and normalizes the first
// capture group of every match in document order.
func byPatterns(norm Normalizer, patterns ...*regexp.Regexp) Strategy[string] {
	return func(p *Page) (string, bool) {
		for _, re := range patterns {
			for _, m := range re.FindAllStringSubmatch(p.HTML, 20) {
				if len(m) < 2 {
					continue
				}
				if v, ok := norm(m[1]); ok {
					return v, true
				}
			}
		}
		return "", false
	}
}

// byStructured normalizes candidates produced from JSON-LD data
func byStructured(collect func(p *Page) []string, norm Normalizer) Strategy[string] {
	return func(p *Page) (string, bool) {
		for _, candidate := range collect(p) {
			if v, ok := norm(candidate); ok {
				return v, true
			}
		}
		return "", false
	}
}
