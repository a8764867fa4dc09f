package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// trackingParams are dropped from URLs before they are used as cache keys
var trackingParams = map[string]bool{
	"ref": true, "ref_": true, "tag": true, "psc": true, "smid": true,
	"gclid": true, "fbclid": true, "linkcode": true, "camp": true, "creative": true,
}

// IsValidURLFormat reports whether raw parses as an absolute URL with a
// scheme and a host. It never panics.
func IsValidURLFormat(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// NormalizeURL lowercases scheme and host, drops the fragment and removes
// tracking query parameters. Unparseable input is returned trimmed.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""

	query := u.Query()
	for key := range query {
		lower := strings.ToLower(key)
		if trackingParams[lower] || strings.HasPrefix(lower, "utm_") || strings.HasPrefix(lower, "pd_rd_") || strings.HasPrefix(lower, "pf_rd_") {
			query.Del(key)
		}
	}
	u.RawQuery = query.Encode()
	return u.String()
}

// cacheKey hashes the normalized URL into a fixed-size key.
// Format: "extract:{sha256 hex}"
func cacheKey(raw string) string {
	sum := sha256.Sum256([]byte(NormalizeURL(raw)))
	return "extract:" + hex.EncodeToString(sum[:])
}
