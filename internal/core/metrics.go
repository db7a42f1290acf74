package core

import (
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsRecorder observes model executions driven by a Registry.
type MetricsRecorder interface {
	ObserveModelRun(name string, d time.Duration, err error)
}

var expvarSeq uint64

// ExpvarMetricsRecorder publishes aggregate model-run timings and result
// counters via expvar, for deployments that prefer process-local metrics
// without external dependencies. Durations accumulate in milliseconds per
// qualified model name.
type ExpvarMetricsRecorder struct {
	name        string
	mu          sync.Mutex
	durationsMS map[string]float64
	results     map[string]map[string]int64
}

// ExpvarMetricsSnapshot is a read-only view of the recorded metrics.
type ExpvarMetricsSnapshot struct {
	DurationsMS map[string]float64          `json:"durations_ms_total"`
	Results     map[string]map[string]int64 `json:"results_total"`
	RecordedAt  time.Time                   `json:"recorded_at"`
}

// NewExpvarMetricsRecorder constructs an expvar-backed recorder published
// under the supplied name. When name is empty a unique one is generated.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		id := atomic.AddUint64(&expvarSeq, 1)
		name = fmt.Sprintf("porecore_model_metrics_%d", id)
	}
	rec := &ExpvarMetricsRecorder{
		name:        name,
		durationsMS: make(map[string]float64),
		results:     make(map[string]map[string]int64),
	}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar export name.
func (r *ExpvarMetricsRecorder) Name() string { return r.name }

// ObserveModelRun records one execution outcome.
func (r *ExpvarMetricsRecorder) ObserveModelRun(name string, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durationsMS[name] += float64(d) / float64(time.Millisecond)
	if r.results[name] == nil {
		r.results[name] = make(map[string]int64)
	}
	r.results[name][outcome]++
}

// Snapshot returns an immutable copy of the aggregated metrics.
func (r *ExpvarMetricsRecorder) Snapshot() ExpvarMetricsSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := ExpvarMetricsSnapshot{
		DurationsMS: make(map[string]float64, len(r.durationsMS)),
		Results:     make(map[string]map[string]int64, len(r.results)),
		RecordedAt:  time.Now().UTC(),
	}
	for k, v := range r.durationsMS {
		snap.DurationsMS[k] = v
	}
	for k, m := range r.results {
		cp := make(map[string]int64, len(m))
		for o, n := range m {
			cp[o] = n
		}
		snap.Results[k] = cp
	}
	return snap
}

// PrometheusMetricsRecorder exports model-run metrics through a Prometheus
// registerer: a duration histogram and an outcome counter, both labeled by
// qualified model name.
type PrometheusMetricsRecorder struct {
	durations *prometheus.HistogramVec
	results   *prometheus.CounterVec
}

// NewPrometheusMetricsRecorder constructs and registers the collectors.
// A nil registerer falls back to the default one.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer) (*PrometheusMetricsRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &PrometheusMetricsRecorder{
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "porecore",
			Name:      "model_run_duration_seconds",
			Help:      "Wall time of registered model executions.",
		}, []string{"model"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "porecore",
			Name:      "model_runs_total",
			Help:      "Registered model executions by outcome.",
		}, []string{"model", "outcome"}),
	}
	if err := reg.Register(r.durations); err != nil {
		return nil, fmt.Errorf("register duration histogram: %w", err)
	}
	if err := reg.Register(r.results); err != nil {
		return nil, fmt.Errorf("register result counter: %w", err)
	}
	return r, nil
}

// ObserveModelRun records one execution outcome.
func (r *PrometheusMetricsRecorder) ObserveModelRun(name string, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.durations.WithLabelValues(name).Observe(d.Seconds())
	r.results.WithLabelValues(name, outcome).Inc()
}
