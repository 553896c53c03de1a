package metrics

import "time"

// OutcomeLabel enumerates build outcome categories for counters.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomeFailed   OutcomeLabel = "failed"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Recorder defines observability hooks for variant resolution and build
// execution. Implementations may forward to Prometheus, OpenTelemetry, etc.
type Recorder interface {
	ObserveResolveDuration(component string, d time.Duration)
	IncVariantResolved(buildable bool)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome OutcomeLabel)
	ObserveTaskDuration(task string, d time.Duration)
	ObserveLeaseWait(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveResolveDuration(string, time.Duration) {}
func (NoopRecorder) IncVariantResolved(bool)                      {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)           {}
func (NoopRecorder) IncBuildOutcome(OutcomeLabel)                 {}
func (NoopRecorder) ObserveTaskDuration(string, time.Duration)    {}
func (NoopRecorder) ObserveLeaseWait(time.Duration)               {}
