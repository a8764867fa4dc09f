package proxy

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/dealscout/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptancePolicy_Evaluate(t *testing.T) {
	policy := DefaultAcceptancePolicy()

	tests := []struct {
		name string
		body string
		want Verdict
	}{
		{"empty", "", VerdictRejected},
		{"short without keyword", strings.Repeat("x", 450), VerdictRejected},
		{"long clean page", strings.Repeat("x", 501), VerdictFull},
		{"long page with captcha and keyword", "CAPTCHA product " + strings.Repeat("x", 600), VerdictPartial},
		{"long page with captcha only", "captcha " + strings.Repeat("x", 600), VerdictRejected},
		{"medium page with keyword", "Price " + strings.Repeat("x", 250), VerdictPartial},
		{"tiny page with keyword", "title", VerdictRejected},
		{"exactly full threshold with keyword", "price" + strings.Repeat("x", 495), VerdictPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Evaluate(tt.body))
		})
	}
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "full", VerdictFull.String())
	assert.Equal(t, "partial", VerdictPartial.String())
	assert.Equal(t, "rejected", VerdictRejected.String())
}

func TestProviderURLFor(t *testing.T) {
	target := "https://www.walmart.com/ip/123?a=b&c=d"

	escaped := Provider{Template: "https://proxy.example/?url={url}"}.URLFor(target)
	u, err := url.Parse(escaped)
	require.NoError(t, err)
	assert.Equal(t, target, u.Query().Get("url"))

	raw := Provider{Template: "https://proxy.example/fetch/{raw}"}.URLFor(target)
	assert.Equal(t, "https://proxy.example/fetch/"+target, raw)
}

func TestParseProviders(t *testing.T) {
	providers, err := ParseProviders([]string{
		"https://api.allorigins.win/raw?url={url}",
		"  ",
		"https://www.proxy.example/fetch/{raw}",
	})
	require.NoError(t, err)
	require.Len(t, providers, 2)
	assert.Equal(t, "allorigins.win", providers[0].Name)
	assert.Equal(t, "proxy.example", providers[1].Name)

	_, err = ParseProviders([]string{"https://proxy.example/no-placeholder"})
	assert.True(t, errors.Is(err, domain.ErrInvalidRequest))

	_, err = ParseProviders([]string{"ftp://proxy.example/{url}"})
	assert.True(t, errors.Is(err, domain.ErrInvalidRequest))
}
