package extractor

import (
	"testing"

	"github.com/dealscout/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

const amazonFixture = `<html><head>
<title>Amazon.com: Sony WH-1000XM5 Wireless Headphones : Electronics</title>
</head><body>
<span id="productTitle">  Sony WH-1000XM5 Wireless Noise Canceling Headphones  </span>
<span class="a-offscreen">$19.99</span><span class="a-text-strike">$39.99</span>
</body></html>`

func TestTitle(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		store  domain.StoreKey
		html   string
		want   string
		wantOK bool
	}{
		{
			name:   "amazon product title span",
			url:    "https://www.amazon.com/dp/B09XS7JWHH",
			store:  domain.StoreAmazon,
			html:   amazonFixture,
			want:   "Sony WH-1000XM5 Wireless Noise Canceling Headphones",
			wantOK: true,
		},
		{
			name:   "amazon title tag pattern",
			url:    "https://www.amazon.com/dp/B09XS7JWHH",
			store:  domain.StoreAmazon,
			html:   `<html><head><title>Amazon.com: Anker Portable Charger 10000mAh : Electronics</title></head></html>`,
			want:   "Anker Portable Charger 10000mAh",
			wantOK: true,
		},
		{
			name:   "bare store name is rejected",
			url:    "https://www.amazon.com/dp/B09XS7JWHH",
			store:  domain.StoreAmazon,
			html:   `<html><head><title>Amazon.com</title></head><body></body></html>`,
			wantOK: false,
		},
		{
			name:   "open graph title",
			url:    "https://shop.example.com/p/1",
			html:   `<html><head><meta property="og:title" content="Cool Gadget Deluxe Edition"></head></html>`,
			want:   "Cool Gadget Deluxe Edition",
			wantOK: true,
		},
		{
			name:   "site suffix stripped from title tag",
			url:    "https://shop.example.com/p/1",
			html:   `<html><head><title>Instant Pot Duo 7-in-1 | Walmart.com</title></head></html>`,
			want:   "Instant Pot Duo 7-in-1",
			wantOK: true,
		},
		{
			name:   "json-ld graph product name",
			url:    "https://shop.example.com/p/1",
			html:   `<script type="application/ld+json">{"@graph":[{"@type":"Product","name":"Graph Product Name"}]}</script>`,
			want:   "Graph Product Name",
			wantOK: true,
		},
		{
			name:   "short h1 is rejected",
			url:    "https://shop.example.com/p/1",
			html:   `<h1>Shoes</h1>`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Title(NewPage(tt.url, tt.html, tt.store))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsGenericTitle(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Amazon.com", true},
		{"Page Not Found", true},
		{"Robot Check", true},
		{"www.example.com", true},
		{"Loading...", true},
		{"Error 503 Service Unavailable", true},
		{"", true},
		{"Sony WH-1000XM5 Headphones", false},
		{"Amazon Basics Plastic Hangers", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGenericTitle(tt.title))
		})
	}
}

func TestFirstMatch(t *testing.T) {
	var miss Strategy[int] = func(*Page) (int, bool) { return 0, false }
	hit := func(n int) Strategy[int] {
		return func(*Page) (int, bool) { return n, true }
	}

	got, ok := FirstMatch(&Page{}, miss, hit(2), hit(3))
	assert.True(t, ok)
	assert.Equal(t, 2, got)

	got, ok = FirstMatch[int](&Page{}, miss)
	assert.False(t, ok)
	assert.Zero(t, got)
}

func TestExtractors_Deterministic(t *testing.T) {
	run := func() (string, PriceInfo, []string) {
		p := NewPage("https://www.amazon.com/dp/B09XS7JWHH", amazonFixture, domain.StoreAmazon)
		title, _ := Title(p)
		return title, Prices(p), Images(p)
	}

	t1, p1, i1 := run()
	t2, p2, i2 := run()
	assert.Equal(t, t1, t2)
	assert.Equal(t, p1, p2)
	assert.Equal(t, i1, i2)
}

func TestExtractors_MalformedHTML(t *testing.T) {
	inputs := []string{
		"",
		"<div><span>unclosed <script type=\"application/ld+json\">{\"@type\":",
		"\x00\xff\xfe<<<>>>",
		`<script type="application/ld+json">[[[[[[[[{"@type":"Product"}]]]]]]]]</script>`,
		`<html><body><img src="javascript:alert(1)"><meta property="og:image" content="::::"></body></html>`,
	}

	for _, in := range inputs {
		for _, key := range []domain.StoreKey{domain.StoreGeneric, domain.StoreAmazon, domain.StoreWalmart} {
			assert.NotPanics(t, func() {
				p := NewPage("https://www.example.com/x", in, key)
				Title(p)
				Prices(p)
				Images(p)
				Description(p)
				Category(p)
				Brand(p)
				Rating(p)
				Availability(p)
			})
		}
	}
}
