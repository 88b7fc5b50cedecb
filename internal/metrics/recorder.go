package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// BuildOutcomeLabel is the final status of one index run.
type BuildOutcomeLabel string

const (
	OutcomeGenerated BuildOutcomeLabel = "generated"
	OutcomeSkipped   BuildOutcomeLabel = "skipped"
	OutcomeFailed    BuildOutcomeLabel = "failed"
	OutcomeCanceled  BuildOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for index runs. Implementations may
// forward to Prometheus; NoopRecorder is the default.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	SetDocuments(n int)
	AddAssets(copied, missing int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)          {}
func (NoopRecorder) SetDocuments(int)                           {}
func (NoopRecorder) AddAssets(int, int)                         {}
