package domain

import "errors"

var (
	// ErrInvalidURL is returned when a string cannot be parsed as an absolute URL
	ErrInvalidURL = errors.New("invalid URL format")

	// ErrProxyExhausted is returned when every proxy failed or returned unusable content
	ErrProxyExhausted = errors.New("all proxies exhausted")

	// ErrUnusableContent is returned when a proxy answered with an error or CAPTCHA page
	ErrUnusableContent = errors.New("unusable page content")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrStoreNotFound is returned when a store key is not in the store table
	ErrStoreNotFound = errors.New("store not found")
)
