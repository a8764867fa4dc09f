// Package store holds the table of known storefronts and detects which one a URL belongs to.
package store

import "github.com/dealscout/backend/internal/domain"

// catalog is declared in detection priority order: the first config whose
// domain matches the hostname wins.
var catalog = []domain.StoreConfig{
	{
		Key:     domain.StoreAmazon,
		Name:    "Amazon",
		Domains: []string{"amazon.", "amzn."},
		TitleSelectors: []string{
			"#productTitle",
			"#title span",
			"h1.a-size-large",
			"#btAsinTitle",
		},
		PriceSelectors: []string{
			"#corePriceDisplay_desktop_feature_div .a-price:not(.a-text-price) .a-offscreen",
			"#corePrice_feature_div .a-price .a-offscreen",
			"#apex_desktop .a-price .a-offscreen",
			"#priceblock_dealprice",
			"#priceblock_ourprice",
			"#price_inside_buybox",
			".a-price:not(.a-text-price) .a-offscreen",
			".a-offscreen",
		},
		OriginalPriceSelectors: []string{
			".basisPrice .a-offscreen",
			".a-price.a-text-price[data-a-strike=\"true\"] .a-offscreen",
			"span[data-a-strike=\"true\"] .a-offscreen",
			".a-text-strike",
			"#listPrice",
			"#priceblock_listprice",
		},
		ImageSelectors: []string{
			"#landingImage",
			"#imgBlkFront",
			"#main-image-container img",
			"#altImages img",
			"#imageBlock img",
		},
		DescriptionSelectors: []string{
			"#productDescription",
			"#bookDescription_feature_div",
			"#aplus_feature_div",
		},
		BrandSelectors: []string{
			"#bylineInfo",
			"tr.po-brand td.po-break-word",
			"#brand",
		},
		CategorySelectors: []string{
			"#wayfinding-breadcrumbs_feature_div ul li a",
			"#nav-subnav .nav-a-content",
		},
		RatingSelectors: []string{
			"#acrPopover",
			"#averageCustomerReviews .a-icon-alt",
			"span[data-hook=\"rating-out-of-text\"]",
			"i.a-icon-star span.a-icon-alt",
		},
		ReviewCountSelectors: []string{
			"#acrCustomerReviewText",
			"span[data-hook=\"total-review-count\"]",
		},
		AvailabilitySelectors: []string{
			"#availability span",
			"#availability",
			"#outOfStock",
		},
	},
	{
		Key:     domain.StoreWalmart,
		Name:    "Walmart",
		Domains: []string{"walmart.com", "walmart.ca"},
		TitleSelectors: []string{
			"h1[itemprop=\"name\"]",
			"[data-automation-id=\"product-title\"]",
			"h1#main-title",
		},
		PriceSelectors: []string{
			"[itemprop=\"price\"]",
			"[data-automation-id=\"product-price\"] span",
			"span[data-testid=\"price-wrap\"] span",
		},
		OriginalPriceSelectors: []string{
			"[data-automation-id=\"strikethrough-price\"]",
			".strike-through",
			"span.strike",
		},
		ImageSelectors: []string{
			"[data-testid=\"hero-image-container\"] img",
			"[data-testid=\"media-thumbnail\"] img",
			"img.db",
		},
		DescriptionSelectors: []string{
			"[data-testid=\"product-description-content\"]",
			".about-desc",
		},
		BrandSelectors: []string{
			"[data-testid=\"product-brand\"]",
			"a[link-identifier=\"brandName\"]",
		},
		CategorySelectors: []string{
			"nav[aria-label=\"breadcrumb\"] li a",
			"[data-testid=\"breadcrumb\"] a",
		},
		RatingSelectors: []string{
			"[itemprop=\"ratingValue\"]",
			".rating-number",
		},
		ReviewCountSelectors: []string{
			"[itemprop=\"reviewCount\"]",
			"[data-testid=\"item-review-section-link\"]",
		},
		AvailabilitySelectors: []string{
			"[data-testid=\"fulfillment-badge\"]",
			".prod-ProductOffer-oosMsg",
		},
	},
	{
		Key:     domain.StoreTarget,
		Name:    "Target",
		Domains: []string{"target.com"},
		TitleSelectors: []string{
			"h1[data-test=\"product-title\"]",
			"[data-test=\"product-title\"]",
		},
		PriceSelectors: []string{
			"[data-test=\"product-price\"]",
			"span[data-test=\"product-price\"]",
		},
		OriginalPriceSelectors: []string{
			"[data-test=\"product-regular-price\"]",
			"[data-test=\"product-price-reg\"]",
		},
		ImageSelectors: []string{
			"[data-test=\"image-gallery-item-0\"] img",
			"[data-test=\"product-image\"] img",
			"picture img",
		},
		DescriptionSelectors: []string{
			"[data-test=\"item-details-description\"]",
			"[data-test=\"product-details-description\"]",
		},
		BrandSelectors: []string{
			"[data-test=\"@web/ProductDetailPageBrandLink\"]",
			"a[data-test=\"brandLink\"]",
		},
		CategorySelectors: []string{
			"nav[aria-label=\"Breadcrumbs\"] a",
			"[data-test=\"@web/Breadcrumbs/BreadcrumbLink\"]",
		},
		RatingSelectors: []string{
			"[data-test=\"ratings\"] span",
		},
		ReviewCountSelectors: []string{
			"[data-test=\"rating-count\"]",
		},
		AvailabilitySelectors: []string{
			"[data-test=\"fulfillment-cell-shipping\"]",
			"[data-test=\"outOfStockMessage\"]",
		},
	},
	{
		Key:     domain.StoreBestBuy,
		Name:    "Best Buy",
		Domains: []string{"bestbuy.com", "bestbuy.ca"},
		TitleSelectors: []string{
			".sku-title h1",
			"h1.heading-5",
		},
		PriceSelectors: []string{
			".priceView-customer-price span",
			"[data-testid=\"customer-price\"] span",
		},
		OriginalPriceSelectors: []string{
			".pricing-price__regular-price",
			"[data-testid=\"regular-price\"]",
		},
		ImageSelectors: []string{
			".primary-image",
			".shop-media-gallery img",
		},
		DescriptionSelectors: []string{
			".shop-product-description",
			"#long-description",
		},
		BrandSelectors: []string{
			".sku-title .product-data-value",
		},
		CategorySelectors: []string{
			".shop-breadcrumb li a",
		},
		RatingSelectors: []string{
			".ugc-c-review-average",
		},
		ReviewCountSelectors: []string{
			".c-reviews-v4 .c-total-reviews",
		},
		AvailabilitySelectors: []string{
			".fulfillment-add-to-cart-button button",
		},
	},
	{
		Key:     domain.StoreEbay,
		Name:    "eBay",
		Domains: []string{"ebay.com", "ebay.co.uk", "ebay.ca"},
		TitleSelectors: []string{
			"h1.x-item-title__mainTitle span",
			"#itemTitle",
		},
		PriceSelectors: []string{
			".x-price-primary span",
			"#prcIsum",
			"#mm-saleDscPrc",
		},
		OriginalPriceSelectors: []string{
			".x-additional-info__textual-display .ux-textspans--STRIKETHROUGH",
			"#orgPrc",
		},
		ImageSelectors: []string{
			".ux-image-carousel-item img",
			"#icImg",
		},
		DescriptionSelectors: []string{
			"#viTabs_0_is",
			".x-item-description",
		},
		BrandSelectors: []string{
			".ux-labels-values--brand .ux-labels-values__values span",
		},
		CategorySelectors: []string{
			"nav.breadcrumbs li a",
		},
		AvailabilitySelectors: []string{
			"#qtySubTxt",
			".x-quantity__availability",
		},
	},
	{
		Key:     domain.StoreHomeDepot,
		Name:    "Home Depot",
		Domains: []string{"homedepot.com", "homedepot.ca"},
		TitleSelectors: []string{
			"h1.product-details__title",
			"[data-component*=\"ProductDetailsTitle\"] h1",
		},
		PriceSelectors: []string{
			"[data-testid=\"price-format\"]",
			".price-format__main-price",
		},
		OriginalPriceSelectors: []string{
			".price-detailed__was-price",
			"[data-testid=\"was-price\"]",
		},
		ImageSelectors: []string{
			".mediagallery__mainimage img",
			"[data-testid=\"media-gallery\"] img",
		},
		DescriptionSelectors: []string{
			".desktop-product-overview",
			"[data-testid=\"product-overview\"]",
		},
		BrandSelectors: []string{
			".product-details__brand--link",
			"[data-testid=\"product-brand\"]",
		},
		CategorySelectors: []string{
			"nav[aria-label=\"breadcrumb\"] a",
		},
		AvailabilitySelectors: []string{
			"[data-testid=\"fulfillment-message\"]",
		},
	},
}

// Known returns deep copies of all store configs in detection order
func Known() []domain.StoreConfig {
	out := make([]domain.StoreConfig, len(catalog))
	for i := range catalog {
		out[i] = catalog[i].Clone()
	}
	return out
}

// Lookup returns a deep copy of the config for a store key
func Lookup(key domain.StoreKey) (*domain.StoreConfig, bool) {
	for i := range catalog {
		if catalog[i].Key == key {
			cfg := catalog[i].Clone()
			return &cfg, true
		}
	}
	return nil, false
}
