package core

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestExpvarRecorderAggregates(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	rec.ObserveModelRun("pore.a", 2*time.Millisecond, nil)
	rec.ObserveModelRun("pore.a", 3*time.Millisecond, nil)
	rec.ObserveModelRun("pore.a", time.Millisecond, errors.New("boom"))

	snap := rec.Snapshot()
	if snap.Results["pore.a"]["ok"] != 2 || snap.Results["pore.a"]["error"] != 1 {
		t.Fatalf("results = %+v", snap.Results)
	}
	if snap.DurationsMS["pore.a"] != 6 {
		t.Fatalf("durations = %+v", snap.DurationsMS)
	}
	if rec.Name() == "" {
		t.Fatal("generated export name is empty")
	}
}

func TestPrometheusRecorderExports(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}
	rec.ObserveModelRun("pore.a", time.Millisecond, nil)
	rec.ObserveModelRun("pore.a", time.Millisecond, errors.New("boom"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	if !names["porecore_model_runs_total"] {
		t.Fatalf("run counter missing from %v", names)
	}
	if !names["porecore_model_run_duration_seconds"] {
		t.Fatalf("duration histogram missing from %v", names)
	}
}

func TestDoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheusMetricsRecorder(reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPrometheusMetricsRecorder(reg); err == nil {
		t.Fatal("second registration on the same registerer must fail")
	}
}
