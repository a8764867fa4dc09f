package cache

import (
	"context"
	"time"

	"github.com/dealscout/backend/internal/domain"
)

// NoopCache never stores anything. Used when caching is disabled.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, error) { return nil, domain.ErrCacheMiss }

func (NoopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NoopCache) Delete(context.Context, string) error { return nil }

func (NoopCache) Exists(context.Context, string) (bool, error) { return false, nil }

func (NoopCache) Close() error { return nil }
