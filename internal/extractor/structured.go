package extractor

import (
	"strconv"
	"strings"
)

// stringsOf flattens a JSON-LD value into candidate strings. Objects yield
// their name, url or @id; arrays yield each element in order.
func stringsOf(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case float64:
		return []string{strconv.FormatFloat(t, 'f', -1, 64)}
	case []any:
		var out []string
		for _, item := range t {
			out = append(out, stringsOf(item)...)
		}
		return out
	case map[string]any:
		for _, key := range []string{"name", "url", "contentUrl", "@id"} {
			if s := stringsOf(t[key]); len(s) > 0 {
				return s
			}
		}
	}
	return nil
}

// objectsOf returns v as a list of objects, accepting a single object or an array
func objectsOf(v any) []map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return []map[string]any{t}
	case []any:
		var out []map[string]any
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// productField collects a top-level field from every Product object
func productField(field string) func(p *Page) []string {
	return func(p *Page) []string {
		var out []string
		for _, obj := range p.objectsOfType("Product") {
			out = append(out, stringsOf(obj[field])...)
		}
		return out
	}
}

// offerField collects a field from the offers of every Product object
func offerField(field string) func(p *Page) []string {
	return func(p *Page) []string {
		var out []string
		for _, obj := range p.objectsOfType("Product") {
			for _, offer := range objectsOf(obj["offers"]) {
				out = append(out, stringsOf(offer[field])...)
				// AggregateOffer carries lowPrice instead of price
				if field == "price" {
					out = append(out, stringsOf(offer["lowPrice"])...)
				}
			}
		}
		for _, offer := range p.objectsOfType("Offer") {
			out = append(out, stringsOf(offer[field])...)
		}
		return out
	}
}

// ratingField collects a field from aggregateRating of every Product object
func ratingField(fields ...string) func(p *Page) []string {
	return func(p *Page) []string {
		var out []string
		for _, obj := range p.objectsOfType("Product") {
			for _, rating := range objectsOf(obj["aggregateRating"]) {
				for _, f := range fields {
					out = append(out, stringsOf(rating[f])...)
				}
			}
		}
		return out
	}
}

// breadcrumbNames returns BreadcrumbList item names in position order, skipping "Home"
func breadcrumbNames(p *Page) []string {
	var out []string
	for _, list := range p.objectsOfType("BreadcrumbList") {
		for _, item := range objectsOf(list["itemListElement"]) {
			names := stringsOf(item["name"])
			if len(names) == 0 {
				names = stringsOf(item["item"])
			}
			for _, n := range names {
				if strings.EqualFold(strings.TrimSpace(n), "home") {
					continue
				}
				out = append(out, n)
			}
		}
	}
	return out
}
