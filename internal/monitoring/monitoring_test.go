package monitoring

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dealscout/backend/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		opts    LogOptions
		level   zapcore.Level
		wantErr bool
	}{
		{"development default level", LogOptions{Environment: "development"}, zapcore.InfoLevel, false},
		{"production debug", LogOptions{Environment: "production", Level: "debug"}, zapcore.DebugLevel, false},
		{"warn level", LogOptions{Level: "warn"}, zapcore.WarnLevel, false},
		{"bad level", LogOptions{Level: "loud"}, zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.level))
			if tt.level > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.level-1))
			}
		})
	}
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dealscout.log")

	logger, err := NewLogger(LogOptions{Environment: "production", Level: "info", File: path})
	require.NoError(t, err)

	logger.Info("hello")
	_ = logger.Sync()

	assert.FileExists(t, path)
}

func TestLogObserver_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	obs := NewLogObserver(zap.New(core))

	obs.Observe(domain.ExtractionEvent{ExtractionID: "x", Stage: domain.StageDetect, Outcome: domain.OutcomeDetected, Store: "amazon"})
	obs.Observe(domain.ExtractionEvent{ExtractionID: "x", Stage: domain.StageExtract, Outcome: domain.OutcomeMatched, Field: "title"})
	obs.Observe(domain.ExtractionEvent{ExtractionID: "x", Stage: domain.StageFallback, Outcome: domain.OutcomeUsed})
	obs.Observe(domain.ExtractionEvent{ExtractionID: "x", Stage: domain.StageRecover, Outcome: domain.OutcomePanic, Detail: "boom"})
	obs.Observe(domain.ExtractionEvent{ExtractionID: "x", Stage: domain.StageFetch, Outcome: domain.OutcomeExhausted})

	entries := logs.AllUntimed()
	require.Len(t, entries, 5)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[4].Level)

	assert.Equal(t, "amazon", entries[0].ContextMap()["store"])
	assert.Equal(t, "title", entries[1].ContextMap()["field"])
	assert.Equal(t, "boom", entries[3].ContextMap()["detail"])
}

func TestMetricsObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	obs := NewMetricsObserver(m)

	obs.Observe(domain.ExtractionEvent{Stage: domain.StageFetch, Provider: "allorigins", Outcome: domain.OutcomeError})
	obs.Observe(domain.ExtractionEvent{Stage: domain.StageFetch, Provider: "allorigins", Outcome: domain.OutcomeError})
	obs.Observe(domain.ExtractionEvent{Stage: domain.StageFetch, Provider: "corsproxy", Outcome: domain.OutcomeAccepted})
	obs.Observe(domain.ExtractionEvent{Stage: domain.StageCache, Outcome: domain.OutcomeMiss})
	obs.Observe(domain.ExtractionEvent{Stage: domain.StageExtract, Field: "price", Outcome: domain.OutcomeMatched})
	obs.Observe(domain.ExtractionEvent{Stage: domain.StageComplete, Store: "amazon", Source: domain.SourceHTML, Duration: 300 * time.Millisecond})
	obs.Observe(domain.ExtractionEvent{Stage: domain.StageComplete, Source: domain.SourceURLFallback})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ProxyAttempts.WithLabelValues("allorigins", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProxyAttempts.WithLabelValues("corsproxy", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FieldMatches.WithLabelValues("price", "matched")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Extractions.WithLabelValues("amazon", "html")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Extractions.WithLabelValues("generic", "url_fallback")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ExtractionDuration))
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(prometheus.NewRegistry())
		NewMetrics(prometheus.NewRegistry())
	})
}

type countingObserver struct{ n int }

func (c *countingObserver) Observe(domain.ExtractionEvent) { c.n++ }

func TestObservers_FanOut(t *testing.T) {
	a, b := &countingObserver{}, &countingObserver{}
	obs := Observers{a, nil, b, NopObserver{}}

	obs.Observe(domain.ExtractionEvent{Stage: domain.StageDetect})
	obs.Observe(domain.ExtractionEvent{Stage: domain.StageFetch})

	assert.Equal(t, 2, a.n)
	assert.Equal(t, 2, b.n)
}
