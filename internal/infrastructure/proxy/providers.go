package proxy

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dealscout/backend/internal/domain"
)

const (
	placeholderEscaped = "{url}"
	placeholderRaw     = "{raw}"
)

// Provider is a public CORS/fetch proxy addressed through a URL template.
// {url} is replaced by the query-escaped target, {raw} by the target verbatim.
type Provider struct {
	Name     string
	Template string
}

// DefaultProviders is the cascade used when no proxies are configured, in priority order
var DefaultProviders = []Provider{
	{Name: "allorigins", Template: "https://api.allorigins.win/raw?url={url}"},
	{Name: "corsproxy", Template: "https://corsproxy.io/?url={url}"},
	{Name: "codetabs", Template: "https://api.codetabs.com/v1/proxy?quest={url}"},
	{Name: "thingproxy", Template: "https://thingproxy.freeboard.io/fetch/{raw}"},
	{Name: "corslol", Template: "https://api.cors.lol/?url={url}"},
}

// URLFor builds the proxy request URL for target
func (p Provider) URLFor(target string) string {
	out := strings.ReplaceAll(p.Template, placeholderEscaped, url.QueryEscape(target))
	return strings.ReplaceAll(out, placeholderRaw, target)
}

// ParseProviders builds providers from configured templates. The provider name
// is the template host without a leading "www." or "api.".
func ParseProviders(templates []string) ([]Provider, error) {
	providers := make([]Provider, 0, len(templates))
	for _, tmpl := range templates {
		tmpl = strings.TrimSpace(tmpl)
		if tmpl == "" {
			continue
		}
		if !strings.Contains(tmpl, placeholderEscaped) && !strings.Contains(tmpl, placeholderRaw) {
			return nil, fmt.Errorf("%w: proxy template %q has no {url} or {raw} placeholder", domain.ErrInvalidRequest, tmpl)
		}
		probe := strings.NewReplacer(placeholderEscaped, "x", placeholderRaw, "x").Replace(tmpl)
		u, err := url.Parse(probe)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return nil, fmt.Errorf("%w: proxy template %q is not an http(s) URL", domain.ErrInvalidRequest, tmpl)
		}
		name := strings.TrimPrefix(strings.TrimPrefix(u.Hostname(), "www."), "api.")
		providers = append(providers, Provider{Name: name, Template: tmpl})
	}
	return providers, nil
}
