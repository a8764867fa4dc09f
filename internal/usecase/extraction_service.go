package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/dealscout/backend/internal/domain"
	"github.com/dealscout/backend/internal/extractor"
	"github.com/dealscout/backend/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var nonPriceCharsRegex = regexp.MustCompile(`[^\d.]`)

// ExtractionServiceConfig holds configuration for the extraction service
type ExtractionServiceConfig struct {
	CacheTTL time.Duration
	// FallbackAllStores enables the URL fallback for every store when the
	// page yields no usable data. By default only Amazon falls back.
	FallbackAllStores bool
}

// ExtractionService turns deal URLs into product records.
// Flow: detect store -> cache -> fetch via proxies -> extract fields -> fallback
type ExtractionService struct {
	fetcher           domain.PageFetcher
	cache             domain.CacheRepository
	observer          domain.ExtractionObserver
	logger            *zap.Logger
	cacheTTL          time.Duration
	fallbackAllStores bool
	inflight          singleflight.Group
}

// NewExtractionService creates a new extraction service with dependencies.
// cache and observer may be nil.
func NewExtractionService(
	fetcher domain.PageFetcher,
	cache domain.CacheRepository,
	observer domain.ExtractionObserver,
	logger *zap.Logger,
	config ExtractionServiceConfig,
) *ExtractionService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 6 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ExtractionService{
		fetcher:           fetcher,
		cache:             cache,
		observer:          observer,
		logger:            logger.Named("extraction"),
		cacheTTL:          cacheTTL,
		fallbackAllStores: config.FallbackAllStores,
	}
}

// ExtractURLData returns the best product record it can build for rawURL.
// It never fails: unexpected errors and panics yield domain.DefaultRecord.
func (s *ExtractionService) ExtractURLData(ctx context.Context, rawURL string) (record *domain.ProductRecord) {
	start := time.Now()
	id := uuid.NewString()
	ctx = domain.WithExtractionID(ctx, id)
	storeLabel := ""

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("extraction panicked",
				zap.String("extraction_id", id),
				zap.String("url", rawURL),
				zap.Any("panic", r),
			)
			s.emit(domain.ExtractionEvent{
				ExtractionID: id, URL: rawURL, Store: storeLabel,
				Stage: domain.StageRecover, Outcome: domain.OutcomePanic, Detail: fmt.Sprint(r),
			})
			record = domain.DefaultRecord()
		}
		s.emit(domain.ExtractionEvent{
			ExtractionID: id, URL: rawURL, Store: storeLabel,
			Stage: domain.StageComplete, Source: record.Source, Duration: time.Since(start),
		})
	}()

	if !IsValidURLFormat(rawURL) {
		s.logger.Debug("invalid URL, returning default record", zap.String("extraction_id", id), zap.String("url", rawURL))
		return domain.DefaultRecord()
	}

	detection := store.Detect(rawURL)
	outcome := domain.OutcomeUnknown
	if detection.Detected() {
		storeLabel = detection.Store.String()
		outcome = domain.OutcomeDetected
	}
	s.emit(domain.ExtractionEvent{ExtractionID: id, URL: rawURL, Store: storeLabel, Stage: domain.StageDetect, Outcome: outcome})

	// Concurrent requests for the same URL share one pipeline run
	key := cacheKey(rawURL)
	v, err, shared := s.inflight.Do(key, func() (any, error) {
		return s.extract(ctx, rawURL, key, detection), nil
	})
	if err != nil {
		return BuildURLFallback(rawURL, detection)
	}
	if shared {
		s.logger.Debug("joined in-flight extraction", zap.String("extraction_id", id))
	}
	return v.(*domain.ProductRecord).Clone()
}

func (s *ExtractionService) extract(ctx context.Context, rawURL, key string, detection store.Detection) *domain.ProductRecord {
	if cached, ok := s.getFromCache(ctx, key, rawURL, detection); ok {
		return cached
	}

	result, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		s.logger.Warn("fetch failed, using URL fallback",
			zap.String("extraction_id", domain.ExtractionIDFrom(ctx)),
			zap.String("url", rawURL),
			zap.Error(err),
		)
		return s.fallback(ctx, rawURL, detection, "fetch failed")
	}

	page := extractor.NewPage(rawURL, result.HTML, detection.Store)
	record := s.assemble(ctx, page, detection)

	if !hasRealData(record) {
		s.emitFor(ctx, rawURL, detection, domain.ExtractionEvent{Stage: domain.StageAssemble, Outcome: domain.OutcomeNoSignal, Provider: result.Provider})
		if detection.Store == domain.StoreAmazon || s.fallbackAllStores {
			return s.fallback(ctx, rawURL, detection, "no usable data in page")
		}
		return record
	}
	s.emitFor(ctx, rawURL, detection, domain.ExtractionEvent{Stage: domain.StageAssemble, Outcome: domain.OutcomeRealData, Provider: result.Provider})

	s.setCache(ctx, key, record)
	return record
}

// assemble runs every field extractor over the page
func (s *ExtractionService) assemble(ctx context.Context, page *extractor.Page, detection store.Detection) *domain.ProductRecord {
	record := domain.NewProductRecord()
	record.Source = domain.SourceHTML
	record.IsStoreDetected = detection.Detected()
	record.Store = domain.StringPtr(detection.DisplayName())

	title, _ := extractor.Title(page)
	prices := extractor.Prices(page)
	images := extractor.Images(page)
	brand, _ := extractor.Brand(page)
	rating := extractor.Rating(page)
	availability, _ := extractor.Availability(page)

	description, ok := extractor.Description(page)
	if !ok {
		description = extractor.SynthesizeDescription(title, detection.DisplayName())
	}
	category, ok := extractor.Category(page)
	if !ok && title != "" {
		category, _ = extractor.CategoryFromText(title)
	}

	record.Title = domain.StringPtr(title)
	record.Description = domain.StringPtr(extractor.TruncateDescription(description))
	record.Price = domain.StringPtr(prices.Current)
	record.OriginalPrice = domain.StringPtr(prices.Original)
	record.Category = domain.StringPtr(category)
	record.Brand = domain.StringPtr(brand)
	record.Rating = domain.StringPtr(rating.Value)
	record.ReviewCount = domain.StringPtr(rating.ReviewCount)
	record.Availability = domain.StringPtr(availability)
	record.ProductID = domain.StringPtr(ProductIDFromURL(page.URL))
	record.SetImages(images)

	fields := []struct {
		name  string
		found bool
	}{
		{"title", title != ""},
		{"price", prices.Current != ""},
		{"originalPrice", prices.Original != ""},
		{"images", len(images) > 0},
		{"description", description != ""},
		{"category", category != ""},
		{"brand", brand != ""},
		{"rating", rating.Value != ""},
		{"reviewCount", rating.ReviewCount != ""},
		{"availability", availability != ""},
	}
	for _, f := range fields {
		outcome := domain.OutcomeMissing
		if f.found {
			outcome = domain.OutcomeMatched
		}
		s.emitFor(ctx, page.URL, detection, domain.ExtractionEvent{Stage: domain.StageExtract, Field: f.name, Outcome: outcome})
	}

	return record
}

func (s *ExtractionService) fallback(ctx context.Context, rawURL string, detection store.Detection, reason string) *domain.ProductRecord {
	s.emitFor(ctx, rawURL, detection, domain.ExtractionEvent{Stage: domain.StageFallback, Outcome: domain.OutcomeUsed, Detail: reason})
	return BuildURLFallback(rawURL, detection)
}

// hasRealData reports whether a record carries anything beyond defaults:
// a price, an image, or a specific title longer than ten characters.
func hasRealData(r *domain.ProductRecord) bool {
	if r.Price != nil || r.OriginalPrice != nil || len(r.Images) > 0 {
		return true
	}
	title := domain.StringValue(r.Title)
	return utf8.RuneCountInString(title) > 10 && !extractor.IsGenericTitle(title)
}

// getFromCache retrieves a record from cache
func (s *ExtractionService) getFromCache(ctx context.Context, key, rawURL string, detection store.Detection) (*domain.ProductRecord, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		outcome := domain.OutcomeMiss
		if !errors.Is(err, domain.ErrCacheMiss) {
			outcome = domain.OutcomeError
			s.logger.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		s.emitFor(ctx, rawURL, detection, domain.ExtractionEvent{Stage: domain.StageCache, Outcome: outcome})
		return nil, false
	}

	var record domain.ProductRecord
	if err := json.Unmarshal(data, &record); err != nil {
		s.logger.Warn("discarding corrupt cache entry", zap.String("key", key), zap.Error(err))
		_ = s.cache.Delete(ctx, key)
		s.emitFor(ctx, rawURL, detection, domain.ExtractionEvent{Stage: domain.StageCache, Outcome: domain.OutcomeError})
		return nil, false
	}

	record.Source = domain.SourceCache
	record.SetImages(record.Images)
	s.emitFor(ctx, rawURL, detection, domain.ExtractionEvent{Stage: domain.StageCache, Outcome: domain.OutcomeHit})
	return &record, true
}

// setCache stores a record in cache
func (s *ExtractionService) setCache(ctx context.Context, key string, record *domain.ProductRecord) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(record)
	if err != nil {
		s.logger.Warn("failed to encode record for cache", zap.Error(err))
		return
	}
	// Log but don't fail if caching fails
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache record", zap.String("key", key), zap.Error(err))
	}
}

// ValidateURL extracts rawURL and reduces prices to bare numbers.
// A malformed URL yields IsReachable=false with an error message.
func (s *ExtractionService) ValidateURL(ctx context.Context, rawURL string) *domain.ValidationResult {
	if !IsValidURLFormat(rawURL) {
		msg := "Invalid URL format"
		return &domain.ValidationResult{IsReachable: false, Error: &msg}
	}

	record := s.ExtractURLData(ctx, rawURL)
	record.Price = stripPrice(record.Price)
	record.OriginalPrice = stripPrice(record.OriginalPrice)

	return &domain.ValidationResult{IsReachable: true, ProductRecord: record}
}

func stripPrice(p *string) *string {
	if p == nil {
		return nil
	}
	return domain.StringPtr(nonPriceCharsRegex.ReplaceAllString(*p, ""))
}

func (s *ExtractionService) emitFor(ctx context.Context, rawURL string, detection store.Detection, event domain.ExtractionEvent) {
	event.ExtractionID = domain.ExtractionIDFrom(ctx)
	event.URL = rawURL
	if detection.Detected() {
		event.Store = detection.Store.String()
	}
	s.emit(event)
}

func (s *ExtractionService) emit(event domain.ExtractionEvent) {
	if s.observer != nil {
		s.observer.Observe(event)
	}
}
