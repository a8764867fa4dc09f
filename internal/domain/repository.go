package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching serialized extraction results
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// PageFetcher retrieves the HTML of a product page
type PageFetcher interface {
	Fetch(ctx context.Context, targetURL string) (*FetchResult, error)
}

// ExtractionObserver receives progress events from the extraction pipeline.
// Implementations must be safe for concurrent use.
type ExtractionObserver interface {
	Observe(event ExtractionEvent)
}
