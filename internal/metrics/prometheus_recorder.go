package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	resolveDuration *prom.HistogramVec
	variantResults  *prom.CounterVec
	buildDuration   prom.Histogram
	buildOutcome    *prom.CounterVec
	taskDuration    *prom.HistogramVec
	leaseWait       prom.Histogram
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		resolveDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "libforge",
			Name:      "resolve_duration_seconds",
			Help:      "Duration of variant matrix resolution passes",
			Buckets:   prom.DefBuckets,
		}, []string{"component"}),
		variantResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "libforge",
			Name:      "variants_resolved_total",
			Help:      "Resolved variants by buildability",
		}, []string{"buildable"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "libforge",
			Name:      "build_duration_seconds",
			Help:      "Total build execution duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "libforge",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		taskDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "libforge",
			Name:      "task_duration_seconds",
			Help:      "Duration of individual build graph tasks",
			Buckets:   prom.DefBuckets,
		}, []string{"task"}),
		leaseWait: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "libforge",
			Name:      "lease_wait_seconds",
			Help:      "Time spent waiting to acquire the exclusive build lease",
			Buckets:   prom.DefBuckets,
		}),
	}
	reg.MustRegister(pr.resolveDuration, pr.variantResults, pr.buildDuration, pr.buildOutcome, pr.taskDuration, pr.leaseWait)
	return pr
}

func (pr *PrometheusRecorder) ObserveResolveDuration(component string, d time.Duration) {
	pr.resolveDuration.WithLabelValues(component).Observe(d.Seconds())
}

func (pr *PrometheusRecorder) IncVariantResolved(buildable bool) {
	label := "false"
	if buildable {
		label = "true"
	}
	pr.variantResults.WithLabelValues(label).Inc()
}

func (pr *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	pr.buildDuration.Observe(d.Seconds())
}

func (pr *PrometheusRecorder) IncBuildOutcome(outcome OutcomeLabel) {
	pr.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (pr *PrometheusRecorder) ObserveTaskDuration(task string, d time.Duration) {
	pr.taskDuration.WithLabelValues(task).Observe(d.Seconds())
}

func (pr *PrometheusRecorder) ObserveLeaseWait(d time.Duration) {
	pr.leaseWait.Observe(d.Seconds())
}
