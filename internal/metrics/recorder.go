package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for build and storefront metrics.
// All methods must be safe on the NoopRecorder so injection stays optional.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncBuildOutcome(outcome string) // outcome: success|warning|failed|canceled
	ObserveCatalogFetchDuration(d time.Duration, success bool)
	SetProductsPublished(n int)
	SetStatesPublished(n int)
	IncCheckoutSession(success bool)
	IncWebhookEvent(result string) // result: processed|duplicate|rejected|failed
	ObserveRequestDuration(route string, status int, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration)          {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)                  {}
func (NoopRecorder) IncStageResult(string, ResultLabel)                  {}
func (NoopRecorder) IncBuildOutcome(string)                              {}
func (NoopRecorder) ObserveCatalogFetchDuration(time.Duration, bool)     {}
func (NoopRecorder) SetProductsPublished(int)                            {}
func (NoopRecorder) SetStatesPublished(int)                              {}
func (NoopRecorder) IncCheckoutSession(bool)                             {}
func (NoopRecorder) IncWebhookEvent(string)                              {}
func (NoopRecorder) ObserveRequestDuration(string, int, time.Duration)   {}
