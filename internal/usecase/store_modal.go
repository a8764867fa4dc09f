package usecase

import (
	"github.com/dealscout/backend/internal/domain"
	"github.com/dealscout/backend/internal/store"
)

// modalConfigs lists the stores that have a dedicated entry form
var modalConfigs = map[domain.StoreKey]domain.StoreModalConfig{
	domain.StoreAmazon: {
		Name:  "Amazon",
		Logo:  "https://logo.clearbit.com/amazon.com",
		Color: "#FF9900",
		Fields: []domain.StoreModalField{
			{Key: "title", Label: "Product Title", Placeholder: "Echo Dot (5th Gen) Smart Speaker"},
			{Key: "price", Label: "Deal Price", Placeholder: "29.99"},
			{Key: "originalPrice", Label: "List Price", Placeholder: "49.99"},
			{Key: "productId", Label: "ASIN", Placeholder: "B09B8V1LZ3"},
			{Key: "couponCode", Label: "Coupon Code", Placeholder: "Optional"},
		},
	},
	domain.StoreWalmart: {
		Name:  "Walmart",
		Logo:  "https://logo.clearbit.com/walmart.com",
		Color: "#0071CE",
		Fields: []domain.StoreModalField{
			{Key: "title", Label: "Product Title", Placeholder: "Instant Pot Duo 7-in-1"},
			{Key: "price", Label: "Rollback Price", Placeholder: "59.00"},
			{Key: "originalPrice", Label: "Was Price", Placeholder: "89.00"},
			{Key: "productId", Label: "Item Number", Placeholder: "123456789"},
		},
	},
	domain.StoreTarget: {
		Name:  "Target",
		Logo:  "https://logo.clearbit.com/target.com",
		Color: "#CC0000",
		Fields: []domain.StoreModalField{
			{Key: "title", Label: "Product Title", Placeholder: "Stanley Quencher Tumbler"},
			{Key: "price", Label: "Sale Price", Placeholder: "35.00"},
			{Key: "originalPrice", Label: "Regular Price", Placeholder: "45.00"},
			{Key: "productId", Label: "TCIN", Placeholder: "87654321"},
			{Key: "couponCode", Label: "Circle Offer", Placeholder: "Optional"},
		},
	},
}

// ShouldUseStoreModal reports whether the URL belongs to a store with a
// dedicated entry form. Store is the detected store key, or nil.
func ShouldUseStoreModal(rawURL string) domain.StoreModalDecision {
	detection := store.Detect(rawURL)
	if !detection.Detected() {
		return domain.StoreModalDecision{}
	}

	_, ok := modalConfigs[detection.Store]
	return domain.StoreModalDecision{
		UseModal: ok,
		Store:    domain.StringPtr(detection.Store.String()),
	}
}

// GetStoreModalConfig returns the entry form hints for a store key or
// display name, or nil when the store has no dedicated form.
func GetStoreModalConfig(storeName string) *domain.StoreModalConfig {
	key, ok := domain.ParseStoreKey(storeName)
	if !ok {
		return nil
	}
	cfg, ok := modalConfigs[key]
	if !ok {
		return nil
	}

	out := cfg
	out.Fields = append([]domain.StoreModalField(nil), cfg.Fields...)
	return &out
}
