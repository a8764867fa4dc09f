// Package extractor recovers product fields from untrusted product page HTML.
//
// Every field is an ordered list of strategies tried with FirstMatch: store
// specific selectors and patterns come first, generic Open Graph, JSON-LD and
// markup heuristics after. Extractors are pure functions of a Page; missing
// data is reported as a false ok value, never as an error.
package extractor

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/dealscout/backend/internal/domain"
	"github.com/dealscout/backend/internal/store"
	"golang.org/x/net/html"
)

// Page is a fetched product page together with the store it belongs to.
// The parsed document and structured data are built lazily and only once.
type Page struct {
	URL    string
	HTML   string
	Store  domain.StoreKey
	Config *domain.StoreConfig

	docOnce sync.Once
	doc     *goquery.Document

	ldOnce     sync.Once
	structured []map[string]any
}

// NewPage wraps html fetched from rawURL for the given store
func NewPage(rawURL, htmlContent string, key domain.StoreKey) *Page {
	cfg, _ := store.Lookup(key)
	return &Page{
		URL:    rawURL,
		HTML:   htmlContent,
		Store:  key,
		Config: cfg,
	}
}

// Document returns the parsed HTML document. Parsing is lenient; broken
// markup produces a partial tree instead of an error.
func (p *Page) Document() *goquery.Document {
	p.docOnce.Do(func() {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.HTML))
		if err != nil {
			doc = goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
		}
		p.doc = doc
	})
	return p.doc
}

// StructuredData returns every JSON-LD object on the page, with arrays and
// @graph containers flattened. Invalid JSON blocks are skipped.
func (p *Page) StructuredData() []map[string]any {
	p.ldOnce.Do(func() {
		p.Document().Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
			var raw any
			if err := json.Unmarshal([]byte(strings.TrimSpace(s.Text())), &raw); err != nil {
				return
			}
			p.structured = appendObjects(p.structured, raw, 0)
		})
	})
	return p.structured
}

func appendObjects(out []map[string]any, v any, depth int) []map[string]any {
	if depth > 4 {
		return out
	}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			out = appendObjects(out, item, depth+1)
		}
	case map[string]any:
		out = append(out, t)
		if graph, ok := t["@graph"]; ok {
			out = appendObjects(out, graph, depth+1)
		}
	}
	return out
}

// objectsOfType returns the structured data objects whose @type includes typeName
func (p *Page) objectsOfType(typeName string) []map[string]any {
	var out []map[string]any
	for _, obj := range p.StructuredData() {
		if hasType(obj, typeName) {
			out = append(out, obj)
		}
	}
	return out
}

func hasType(obj map[string]any, typeName string) bool {
	switch t := obj["@type"].(type) {
	case string:
		return strings.EqualFold(t, typeName)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.EqualFold(s, typeName) {
				return true
			}
		}
	}
	return false
}

// storeSelectors returns selectors from the page's store config, or nil for generic pages
func (p *Page) storeSelectors(pick func(*domain.StoreConfig) []string) []string {
	if p.Config == nil {
		return nil
	}
	return pick(p.Config)
}
