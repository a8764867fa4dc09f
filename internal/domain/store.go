package domain

import (
	"slices"
	"strings"
)

// StoreKey identifies a known storefront. The zero value means no store was detected.
type StoreKey int

const (
	StoreGeneric StoreKey = iota
	StoreAmazon
	StoreWalmart
	StoreTarget
	StoreBestBuy
	StoreEbay
	StoreHomeDepot
)

var storeKeyNames = map[StoreKey]string{
	StoreGeneric:   "generic",
	StoreAmazon:    "amazon",
	StoreWalmart:   "walmart",
	StoreTarget:    "target",
	StoreBestBuy:   "bestbuy",
	StoreEbay:      "ebay",
	StoreHomeDepot: "homedepot",
}

// String returns the lowercase store key
func (k StoreKey) String() string {
	if name, ok := storeKeyNames[k]; ok {
		return name
	}
	return "generic"
}

// ParseStoreKey converts a store key or display name to a StoreKey.
// Matching ignores case, spaces and dots ("Best Buy" and "bestbuy" are equal).
func ParseStoreKey(s string) (StoreKey, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "", ".", "", "-", "", "_", "").Replace(normalized)
	for key, name := range storeKeyNames {
		if key != StoreGeneric && name == normalized {
			return key, true
		}
	}
	return StoreGeneric, false
}

// StoreConfig describes how to recognise a storefront and where its product
// fields live in the page markup. Selectors are CSS selectors tried in order.
type StoreConfig struct {
	Key                    StoreKey
	Name                   string
	Domains                []string
	TitleSelectors         []string
	PriceSelectors         []string
	OriginalPriceSelectors []string
	ImageSelectors         []string
	DescriptionSelectors   []string
	BrandSelectors         []string
	CategorySelectors      []string
	RatingSelectors        []string
	ReviewCountSelectors   []string
	AvailabilitySelectors  []string
}

// Clone returns a deep copy; the slices of the result share nothing with c.
func (c StoreConfig) Clone() StoreConfig {
	out := c
	out.Domains = slices.Clone(c.Domains)
	out.TitleSelectors = slices.Clone(c.TitleSelectors)
	out.PriceSelectors = slices.Clone(c.PriceSelectors)
	out.OriginalPriceSelectors = slices.Clone(c.OriginalPriceSelectors)
	out.ImageSelectors = slices.Clone(c.ImageSelectors)
	out.DescriptionSelectors = slices.Clone(c.DescriptionSelectors)
	out.BrandSelectors = slices.Clone(c.BrandSelectors)
	out.CategorySelectors = slices.Clone(c.CategorySelectors)
	out.RatingSelectors = slices.Clone(c.RatingSelectors)
	out.ReviewCountSelectors = slices.Clone(c.ReviewCountSelectors)
	out.AvailabilitySelectors = slices.Clone(c.AvailabilitySelectors)
	return out
}
