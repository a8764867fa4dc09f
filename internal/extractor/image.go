package extractor

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dealscout/backend/internal/domain"
	"golang.org/x/net/html"
)

// MaxImages caps the number of image URLs returned per product.
const MaxImages = 10

var (
	imageExtRegex = regexp.MustCompile(`(?i)\.(?:jpe?g|png|webp|gif|avif)\b`)

	amazonHiResRegex    = regexp.MustCompile(`"hiRes"\s*:\s*"(https?://[^"]+)"`)
	amazonLargeRegex    = regexp.MustCompile(`"large"\s*:\s*"(https?://[^"]+)"`)
	amazonOldHiresRegex = regexp.MustCompile(`data-old-hires="([^"]+)"`)
	amazonDynamicRegex  = regexp.MustCompile(`data-a-dynamic-image="([^"]+)"`)
	quotedURLRegex      = regexp.MustCompile(`"(https?://[^"]+)"`)

	// ._AC_SX679_.jpg and similar sizing tokens on Amazon media hosts
	amazonSizeTokenRegex = regexp.MustCompile(`\._[A-Za-z0-9,_\-]+_\.(jpe?g|png|webp|gif)$`)
)

var imageNoise = []string{"sprite", "transparent-pixel", "spacer", "1x1", "blank.gif", "loading", "spinner"}

var imageAttrs = []string{"src", "data-src", "data-lazy-src", "data-old-hires", "data-zoom-image"}

var gallerySelectors = []string{
	`[class*="gallery"] img`,
	`[class*="carousel"] img`,
	`[class*="product-image"] img`,
	`[class*="productImage"] img`,
}

// Images returns up to MaxImages distinct absolute image URLs, best first.
func Images(p *Page) []string {
	c := imageCollector{base: baseURL(p.URL), seen: make(map[string]bool)}

	if p.Store == domain.StoreAmazon {
		c.add(amazonImages(p)...)
	}
	c.add(selectorImages(p, p.storeSelectors(func(cfg *domain.StoreConfig) []string { return cfg.ImageSelectors }))...)
	c.add(metaImages(p)...)
	c.add(productField("image")(p)...)
	c.add(selectorImages(p, gallerySelectors)...)

	return c.urls
}

type imageCollector struct {
	base *url.URL
	seen map[string]bool
	urls []string
}

func (c *imageCollector) add(candidates ...string) {
	for _, raw := range candidates {
		if len(c.urls) >= MaxImages {
			return
		}
		u, ok := c.normalize(raw)
		if !ok || c.seen[u] {
			continue
		}
		c.seen[u] = true
		c.urls = append(c.urls, u)
	}
}

func (c *imageCollector) normalize(raw string) (string, bool) {
	s := strings.TrimSpace(html.UnescapeString(raw))
	if s == "" || strings.HasPrefix(s, "data:") {
		return "", false
	}
	switch {
	case strings.HasPrefix(s, "//"):
		s = "https:" + s
	case !strings.HasPrefix(s, "http"):
		if c.base == nil {
			return "", false
		}
		ref, err := url.Parse(s)
		if err != nil {
			return "", false
		}
		s = c.base.ResolveReference(ref).String()
	}
	if !strings.HasPrefix(s, "http") || strings.ContainsAny(s, " \t\n") {
		return "", false
	}
	if !imageExtRegex.MatchString(s) {
		return "", false
	}
	lower := strings.ToLower(s)
	for _, noise := range imageNoise {
		if strings.Contains(lower, noise) {
			return "", false
		}
	}
	return s, true
}

func baseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil
	}
	return u
}

// amazonImages reads the gallery data embedded in scripts and attributes and
// rewrites thumbnails to their large rendition.
func amazonImages(p *Page) []string {
	var out []string
	for _, re := range []*regexp.Regexp{amazonHiResRegex, amazonLargeRegex, amazonOldHiresRegex} {
		for _, m := range re.FindAllStringSubmatch(p.HTML, 50) {
			out = append(out, UpgradeAmazonImage(m[1]))
		}
	}
	// the dynamic image attribute is an escaped JSON object keyed by URL;
	// keys are read in document order rather than decoded into a map
	for _, m := range amazonDynamicRegex.FindAllStringSubmatch(p.HTML, 10) {
		for _, u := range quotedURLRegex.FindAllStringSubmatch(html.UnescapeString(m[1]), 20) {
			out = append(out, UpgradeAmazonImage(u[1]))
		}
	}
	return out
}

// UpgradeAmazonImage rewrites an Amazon media URL to its 1500px rendition.
// Other URLs are returned unchanged.
func UpgradeAmazonImage(u string) string {
	if !strings.Contains(u, "media-amazon.com") && !strings.Contains(u, "images-amazon.com") {
		return u
	}
	return amazonSizeTokenRegex.ReplaceAllString(u, "._AC_SL1500_.$1")
}

func selectorImages(p *Page, selectors []string) []string {
	var out []string
	doc := p.Document()
	for _, sel := range selectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			for _, attr := range imageAttrs {
				if v, ok := s.Attr(attr); ok && v != "" {
					out = append(out, v)
				}
			}
		})
	}
	return out
}

func metaImages(p *Page) []string {
	var out []string
	doc := p.Document()
	for _, key := range []string{"og:image", "og:image:secure_url", "og:image:url", "twitter:image", "twitter:image:src"} {
		doc.Find(`meta[property="` + key + `"], meta[name="` + key + `"]`).Each(func(_ int, s *goquery.Selection) {
			if v, ok := s.Attr("content"); ok {
				out = append(out, v)
			}
		})
	}
	if v, ok := doc.Find(`link[rel="image_src"]`).First().Attr("href"); ok {
		out = append(out, v)
	}
	doc.Find(`[itemprop="image"]`).Each(func(_ int, s *goquery.Selection) {
		for _, attr := range []string{"content", "src", "href"} {
			if v, ok := s.Attr(attr); ok {
				out = append(out, v)
			}
		}
	})
	return out
}
