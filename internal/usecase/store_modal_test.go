package usecase

import (
	"testing"

	"github.com/dealscout/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldUseStoreModal(t *testing.T) {
	tests := []struct {
		url      string
		useModal bool
		store    string
	}{
		{"https://www.amazon.com/dp/B0ABCDEFGH", true, "amazon"},
		{"https://www.walmart.com/ip/123", true, "walmart"},
		{"https://www.target.com/p/x/-/A-1", true, "target"},
		{"https://www.bestbuy.com/site/tv/1.p", false, "bestbuy"},
		{"https://example.com/thing", false, ""},
		{"garbage", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got := ShouldUseStoreModal(tt.url)
			assert.Equal(t, tt.useModal, got.UseModal)
			assert.Equal(t, tt.store, domain.StringValue(got.Store))
		})
	}
}

func TestGetStoreModalConfig(t *testing.T) {
	cfg := GetStoreModalConfig("Amazon")
	require.NotNil(t, cfg)
	assert.Equal(t, "#FF9900", cfg.Color)
	assert.Equal(t, "https://logo.clearbit.com/amazon.com", cfg.Logo)
	assert.NotEmpty(t, cfg.Fields)

	// Returned configs are copies
	cfg.Fields[0].Label = "changed"
	assert.Equal(t, "Product Title", GetStoreModalConfig("amazon").Fields[0].Label)

	assert.Equal(t, "#0071CE", GetStoreModalConfig("walmart").Color)
	assert.Equal(t, "#CC0000", GetStoreModalConfig("TARGET").Color)
	assert.Nil(t, GetStoreModalConfig("bestbuy"))
	assert.Nil(t, GetStoreModalConfig("nowhere"))
}
