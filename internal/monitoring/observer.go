package monitoring

import (
	"github.com/dealscout/backend/internal/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogObserver writes extraction events as structured log entries
type LogObserver struct {
	logger *zap.Logger
}

// NewLogObserver creates an observer logging through logger
func NewLogObserver(logger *zap.Logger) *LogObserver {
	return &LogObserver{logger: logger.Named("extraction")}
}

func (o *LogObserver) Observe(e domain.ExtractionEvent) {
	fields := []zap.Field{
		zap.String("extraction_id", e.ExtractionID),
		zap.String("stage", string(e.Stage)),
		zap.String("outcome", string(e.Outcome)),
	}
	if e.URL != "" {
		fields = append(fields, zap.String("url", e.URL))
	}
	if e.Store != "" {
		fields = append(fields, zap.String("store", e.Store))
	}
	if e.Provider != "" {
		fields = append(fields, zap.String("provider", e.Provider))
	}
	if e.Field != "" {
		fields = append(fields, zap.String("field", e.Field))
	}
	if e.Source != "" {
		fields = append(fields, zap.String("source", e.Source))
	}
	if e.Detail != "" {
		fields = append(fields, zap.String("detail", e.Detail))
	}
	if e.Duration > 0 {
		fields = append(fields, zap.Duration("duration", e.Duration))
	}

	if ce := o.logger.Check(levelFor(e), string(e.Stage)); ce != nil {
		ce.Write(fields...)
	}
}

func levelFor(e domain.ExtractionEvent) zapcore.Level {
	switch {
	case e.Stage == domain.StageRecover:
		return zapcore.ErrorLevel
	case e.Stage == domain.StageFallback,
		e.Stage == domain.StageFetch && e.Outcome == domain.OutcomeExhausted:
		return zapcore.WarnLevel
	case e.Stage == domain.StageExtract, e.Stage == domain.StageFetch:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// MetricsObserver turns extraction events into Prometheus samples
type MetricsObserver struct {
	metrics *Metrics
}

// NewMetricsObserver creates an observer recording into m
func NewMetricsObserver(m *Metrics) *MetricsObserver {
	return &MetricsObserver{metrics: m}
}

func (o *MetricsObserver) Observe(e domain.ExtractionEvent) {
	switch e.Stage {
	case domain.StageFetch:
		if e.Provider != "" {
			o.metrics.ProxyAttempts.WithLabelValues(e.Provider, string(e.Outcome)).Inc()
		}
	case domain.StageCache:
		o.metrics.CacheLookups.WithLabelValues(string(e.Outcome)).Inc()
	case domain.StageExtract:
		o.metrics.FieldMatches.WithLabelValues(e.Field, string(e.Outcome)).Inc()
	case domain.StageComplete:
		o.metrics.Extractions.WithLabelValues(storeLabel(e.Store), e.Source).Inc()
		if e.Duration > 0 {
			o.metrics.ExtractionDuration.WithLabelValues(storeLabel(e.Store)).Observe(e.Duration.Seconds())
		}
	}
}

func storeLabel(store string) string {
	if store == "" {
		return "generic"
	}
	return store
}

// Observers fans an event out to several observers in order
type Observers []domain.ExtractionObserver

func (obs Observers) Observe(e domain.ExtractionEvent) {
	for _, o := range obs {
		if o != nil {
			o.Observe(e)
		}
	}
}

// NopObserver discards events
type NopObserver struct{}

func (NopObserver) Observe(domain.ExtractionEvent) {}
