package domain

import (
	"context"
	"time"
)

// Stage names a step of the extraction pipeline
type Stage string

const (
	StageDetect   Stage = "detect"
	StageCache    Stage = "cache"
	StageFetch    Stage = "fetch"
	StageExtract  Stage = "extract"
	StageAssemble Stage = "assemble"
	StageFallback Stage = "fallback"
	StageRecover  Stage = "recover"
	StageComplete Stage = "complete"
)

// Outcome describes how a stage ended
type Outcome string

const (
	OutcomeDetected  Outcome = "detected"
	OutcomeUnknown   Outcome = "unknown"
	OutcomeHit       Outcome = "hit"
	OutcomeMiss      Outcome = "miss"
	OutcomeAccepted  Outcome = "accepted"
	OutcomePartial   Outcome = "partial"
	OutcomeRejected  Outcome = "rejected"
	OutcomeError     Outcome = "error"
	OutcomeExhausted Outcome = "exhausted"
	OutcomeMatched   Outcome = "matched"
	OutcomeMissing   Outcome = "missing"
	OutcomeRealData  Outcome = "real_data"
	OutcomeNoSignal  Outcome = "no_signal"
	OutcomeUsed      Outcome = "used"
	OutcomePanic     Outcome = "panic"
)

// ExtractionEvent is emitted by the pipeline at every stage.
// Fields that do not apply to a stage are left empty.
type ExtractionEvent struct {
	ExtractionID string
	URL          string
	Store        string
	Stage        Stage
	Outcome      Outcome
	Provider     string
	Field        string
	Source       string
	Detail       string
	Duration     time.Duration
}

type extractionIDKey struct{}

// WithExtractionID attaches an extraction id to ctx so infrastructure events can be correlated
func WithExtractionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, extractionIDKey{}, id)
}

// ExtractionIDFrom returns the extraction id stored in ctx, or ""
func ExtractionIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(extractionIDKey{}).(string)
	return id
}
