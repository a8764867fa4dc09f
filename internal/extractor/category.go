package extractor

import (
	"net/url"
	"strings"

	"github.com/dealscout/backend/internal/domain"
)

// categoryKeywords is checked in order; the first category with a matching
// keyword wins. Single words also match their plural.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"Electronics", []string{
		"laptop", "computer", "monitor", "headphone", "headphones", "earbud", "earbuds", "tv", "television",
		"camera", "speaker", "tablet", "ipad", "iphone", "smartphone", "charger", "keyboard", "mouse",
		"console", "playstation", "xbox", "nintendo", "smartwatch", "router", "ssd", "usb", "bluetooth",
	}},
	{"Home & Kitchen", []string{
		"kitchen", "cookware", "blender", "coffee maker", "vacuum", "furniture", "bedding", "pillow",
		"mattress", "hanger", "storage", "lamp", "decor", "towel", "air fryer", "knife", "sheets",
	}},
	{"Clothing, Shoes & Jewelry", []string{
		"shirt", "shoe", "sneaker", "dress", "jacket", "pants", "jeans", "hoodie", "sock", "boot",
		"clothing", "apparel", "clothes", "necklace", "bracelet", "jewelry", "watch",
	}},
	{"Beauty & Personal Care", []string{
		"beauty", "makeup", "skincare", "shampoo", "conditioner", "lotion", "perfume", "razor", "toothbrush",
	}},
	{"Toys & Games", []string{"toy", "lego", "puzzle", "board game", "doll"}},
	{"Sports & Outdoors", []string{"fitness", "yoga", "bike", "bicycle", "camping", "tent", "dumbbell", "outdoor"}},
	{"Tools & Home Improvement", []string{"drill", "tool", "saw", "wrench", "screwdriver", "ladder"}},
	{"Grocery & Gourmet Food", []string{"snack", "grocery", "protein", "candy", "coffee", "tea"}},
	{"Books", []string{"book", "novel", "paperback", "hardcover", "kindle"}},
	{"Pet Supplies", []string{"dog", "cat", "pet", "litter"}},
	{"Baby", []string{"baby", "diaper", "stroller"}},
	{"Automotive", []string{"automotive", "tire", "dashcam"}},
}

var genericCrumbs = map[string]bool{
	"home": true, "back": true, "back to results": true, "all": true, "all departments": true,
	"shop": true, "see more": true, "departments": true, "products": true,
}

var categoryStrategies = []Strategy[string]{
	categoryFromURL,
	byStoreSelectors(func(c *domain.StoreConfig) []string { return c.CategorySelectors }, nil, normalizeCategory),
	byStructured(breadcrumbNames, normalizeCategory),
	byStructured(productField("category"), normalizeCategory),
	byMeta(normalizeCategory, "product:category", "og:product:category"),
}

// Category extracts a coarse product category.
func Category(p *Page) (string, bool) {
	return FirstMatch(p, categoryStrategies...)
}

func categoryFromURL(p *Page) (string, bool) {
	u, err := url.Parse(p.URL)
	if err != nil {
		return "", false
	}
	return CategoryFromText(u.Path)
}

// CategoryFromText maps free text such as a title or URL slug onto a
// category using the keyword table.
func CategoryFromText(text string) (string, bool) {
	tokens := words(text)
	if len(tokens) == 0 {
		return "", false
	}
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	joined := " " + strings.Join(tokens, " ") + " "

	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(kw, " ") {
				if strings.Contains(joined, " "+kw+" ") {
					return entry.category, true
				}
				continue
			}
			if set[kw] || set[kw+"s"] || set[kw+"es"] {
				return entry.category, true
			}
		}
	}
	return "", false
}

func normalizeCategory(raw string) (string, bool) {
	s := trimDecoration(cleanText(raw))
	n := runeLen(s)
	if n < 2 || n > 60 {
		return "", false
	}
	if genericCrumbs[strings.ToLower(s)] || isBlockedText(s) {
		return "", false
	}
	return s, true
}
