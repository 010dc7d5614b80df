package metrics

import (
	"errors"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func findMetric(t *testing.T, r *Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := r.Gatherer().Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestRegistry_UpdateTopology(t *testing.T) {
	r := NewRegistry()
	r.UpdateTopology(125, 300)

	mf := findMetric(t, r, "pnm_network_pores_total")
	if mf == nil {
		t.Fatal("pore gauge not registered")
	}
	if got := mf.GetMetric()[0].GetGauge().GetValue(); got != 125 {
		t.Errorf("expected 125 pores, got %v", got)
	}

	mf = findMetric(t, r, "pnm_network_throats_total")
	if got := mf.GetMetric()[0].GetGauge().GetValue(); got != 300 {
		t.Errorf("expected 300 throats, got %v", got)
	}
}

func TestRegistry_RecordModel(t *testing.T) {
	r := NewRegistry()
	r.RecordModel("misc.random", 2*time.Millisecond, nil)
	r.RecordModel("misc.random", time.Millisecond, errors.New("boom"))

	mf := findMetric(t, r, "pnm_model_duration_seconds")
	if mf == nil {
		t.Fatal("duration histogram not registered")
	}
	if got := mf.GetMetric()[0].GetHistogram().GetSampleCount(); got != 2 {
		t.Errorf("expected 2 samples, got %d", got)
	}

	mf = findMetric(t, r, "pnm_model_failures_total")
	if mf == nil {
		t.Fatal("failure counter not registered")
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Errorf("expected 1 failure, got %v", got)
	}
}

func TestRegistry_RecordRegeneration(t *testing.T) {
	r := NewRegistry()
	r.RecordRegeneration("geo_01", "ok")
	r.RecordRegeneration("geo_01", "ok")
	r.RecordRegeneration("geo_01", "error")

	mf := findMetric(t, r, "pnm_regenerations_total")
	if mf == nil {
		t.Fatal("regeneration counter not registered")
	}

	total := 0.0
	for _, m := range mf.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	if total != 3 {
		t.Errorf("expected 3 regenerations recorded, got %v", total)
	}
}
