package proxy

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dealscout/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const targetURL = "https://www.amazon.com/dp/B09XS7JWHH?th=1"

var productPage = "<html><head><title>Product</title></head><body>" + strings.Repeat("<p>price details</p>", 40) + "</body></html>"

type recordingObserver struct {
	mu     sync.Mutex
	events []domain.ExtractionEvent
}

func (o *recordingObserver) Observe(e domain.ExtractionEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) outcomes() []domain.Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]domain.Outcome, 0, len(o.events))
	for _, e := range o.events {
		out = append(out, e.Outcome)
	}
	return out
}

// proxyServer serves one behaviour per path prefix so a single httptest server
// can stand in for several providers
func proxyServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.Trim(r.URL.Path, "/")
		if h, ok := handlers[name]; ok {
			h(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)
	return server
}

func providersFor(server *httptest.Server, names ...string) []Provider {
	out := make([]Provider, 0, len(names))
	for _, n := range names {
		out = append(out, Provider{Name: n, Template: server.URL + "/" + n + "?url={url}"})
	}
	return out
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Options{}, nil, nil)

	assert.Equal(t, DefaultProviders, client.Providers())
	assert.Equal(t, DefaultTimeout, client.timeout)
	assert.Equal(t, DefaultUserAgent, client.userAgent)
	assert.Equal(t, int64(DefaultMaxBodyBytes), client.maxBody)
	assert.Equal(t, DefaultAcceptancePolicy(), client.policy)
	assert.NotNil(t, client.rateLimiter)
}

func TestFetch_FirstAcceptableProviderWins(t *testing.T) {
	var secondCalled, thirdCalled atomic.Bool
	server := proxyServer(t, map[string]http.HandlerFunc{
		"broken": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
		"good": func(w http.ResponseWriter, r *http.Request) {
			secondCalled.Store(true)
			assert.Equal(t, targetURL, r.URL.Query().Get("url"))
			assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
			assert.NotEmpty(t, r.Header.Get("Accept"))
			assert.NotEmpty(t, r.Header.Get("Accept-Language"))
			_, _ = io.WriteString(w, productPage)
		},
		"unused": func(w http.ResponseWriter, r *http.Request) {
			thirdCalled.Store(true)
		},
	})

	observer := &recordingObserver{}
	client := NewClient(Options{Providers: providersFor(server, "broken", "good", "unused")}, nil, observer)

	ctx := domain.WithExtractionID(context.Background(), "ex-1")
	result, err := client.Fetch(ctx, targetURL)

	require.NoError(t, err)
	assert.Equal(t, "good", result.Provider)
	assert.False(t, result.Partial)
	assert.Equal(t, productPage, result.HTML)
	assert.True(t, secondCalled.Load())
	assert.False(t, thirdCalled.Load())

	assert.Equal(t, []domain.Outcome{domain.OutcomeError, domain.OutcomeAccepted}, observer.outcomes())
	for _, e := range observer.events {
		assert.Equal(t, "ex-1", e.ExtractionID)
		assert.Equal(t, domain.StageFetch, e.Stage)
	}
}

func TestFetch_PartialContent(t *testing.T) {
	body := "<html><body>captcha " + strings.Repeat("product ", 60) + "</body></html>"
	server := proxyServer(t, map[string]http.HandlerFunc{
		"p": func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, body) },
	})

	client := NewClient(Options{Providers: providersFor(server, "p")}, nil, nil)
	result, err := client.Fetch(context.Background(), targetURL)

	require.NoError(t, err)
	assert.True(t, result.Partial)
}

func TestFetch_AllProvidersFail(t *testing.T) {
	server := proxyServer(t, map[string]http.HandlerFunc{
		"short": func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, "nope") },
		"blocked": func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "To discuss automated access please solve the captcha"+strings.Repeat(" .", 300))
		},
	})

	observer := &recordingObserver{}
	client := NewClient(Options{Providers: providersFor(server, "short", "blocked", "missing")}, nil, observer)
	result, err := client.Fetch(context.Background(), targetURL)

	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProxyExhausted))
	assert.Equal(t, []domain.Outcome{domain.OutcomeRejected, domain.OutcomeRejected, domain.OutcomeError, domain.OutcomeExhausted}, observer.outcomes())

	last := observer.events[len(observer.events)-1]
	assert.Equal(t, domain.StageFetch, last.Stage)
	assert.Empty(t, last.Provider)
	assert.Equal(t, targetURL, last.URL)
}

func TestFetch_InvalidURL(t *testing.T) {
	client := NewClient(Options{}, nil, nil)

	_, err := client.Fetch(context.Background(), "not a url")

	assert.True(t, errors.Is(err, domain.ErrInvalidURL))
}

func TestFetch_CanceledContext(t *testing.T) {
	server := proxyServer(t, map[string]http.HandlerFunc{
		"p": func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, productPage) },
	})
	client := NewClient(Options{Providers: providersFor(server, "p")}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Fetch(ctx, targetURL)

	assert.True(t, errors.Is(err, domain.ErrProxyExhausted))
}

func TestFetch_BodyIsCapped(t *testing.T) {
	server := proxyServer(t, map[string]http.HandlerFunc{
		"p": func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, productPage) },
	})
	client := NewClient(Options{Providers: providersFor(server, "p"), MaxBodyBytes: 600}, nil, nil)

	result, err := client.Fetch(context.Background(), targetURL)

	require.NoError(t, err)
	assert.Len(t, result.HTML, 600)
}

type fakeDoer struct {
	requests []*http.Request
	err      error
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(productPage)),
		Header:     make(http.Header),
	}, nil
}

func TestFetch_RawTemplate(t *testing.T) {
	doer := &fakeDoer{}
	client := NewClient(Options{Providers: []Provider{{Name: "raw", Template: "https://proxy.example/fetch/{raw}"}}}, nil, nil)
	client.SetHTTPClient(doer)

	_, err := client.Fetch(context.Background(), targetURL)

	require.NoError(t, err)
	require.Len(t, doer.requests, 1)
	assert.Equal(t, "https://proxy.example/fetch/"+targetURL, doer.requests[0].URL.String())
}

func TestFetch_TransportError(t *testing.T) {
	doer := &fakeDoer{err: errors.New("connection refused")}
	client := NewClient(Options{Providers: []Provider{{Name: "a", Template: "https://a.example/?u={url}"}, {Name: "b", Template: "https://b.example/?u={url}"}}}, nil, nil)
	client.SetHTTPClient(doer)

	_, err := client.Fetch(context.Background(), targetURL)

	assert.True(t, errors.Is(err, domain.ErrProxyExhausted))
	assert.Contains(t, err.Error(), "connection refused")
	assert.Len(t, doer.requests, 2)
}
