package store

import (
	"net/url"
	"strings"

	"github.com/dealscout/backend/internal/domain"
)

// Detection is the result of classifying a URL against the store table.
// Config is nil when no store matched.
type Detection struct {
	Store  domain.StoreKey
	Config *domain.StoreConfig
}

// Detected reports whether the URL belongs to a known store
func (d Detection) Detected() bool {
	return d.Store != domain.StoreGeneric && d.Config != nil
}

// DisplayName returns the store display name, or "" when nothing was detected
func (d Detection) DisplayName() string {
	if d.Config == nil {
		return ""
	}
	return d.Config.Name
}

// Detect classifies rawURL by its hostname. Unparseable input yields an empty Detection.
func Detect(rawURL string) Detection {
	host := Hostname(rawURL)
	if host == "" {
		return Detection{}
	}

	for i := range catalog {
		for _, d := range catalog[i].Domains {
			if strings.Contains(host, d) {
				cfg := catalog[i].Clone()
				return Detection{Store: cfg.Key, Config: &cfg}
			}
		}
	}

	return Detection{}
}

// Hostname returns the lowercased host of an absolute URL, or "" if it cannot be parsed.
func Hostname(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
