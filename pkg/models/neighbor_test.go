package models

import (
	"math"
	"testing"

	"github.com/NaiveSK/OpenPNM/pkg/core"
	"github.com/NaiveSK/OpenPNM/pkg/logging"
	"github.com/NaiveSK/OpenPNM/pkg/network"
)

func quietProject(t *testing.T, np int, conns [][2]int) *core.Project {
	t.Helper()
	net, err := network.NewNetwork(np, conns)
	if err != nil {
		t.Fatalf("failed to create network: %v", err)
	}
	return core.NewProjectWithConfig(net, core.ProjectConfig{Logger: logging.Nop()})
}

// chain 0-1-2-3-4 with throat.seed = [0.1 0.2 0.3 0.4]
func seededChain(t *testing.T) *core.Project {
	t.Helper()
	p := quietProject(t, 5, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}})
	if err := p.FullDomain().Store().Set("throat.seed", []float64{0.1, 0.2, 0.3, 0.4}); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}
	return p
}

func TestFromNeighborThroats_MinOverChain(t *testing.T) {
	p := seededChain(t)

	values, err := FromNeighborThroats(p.FullDomain(), core.Params{"mode": "min"})
	if err != nil {
		t.Fatalf("FromNeighborThroats failed: %v", err)
	}

	want := []float64{0.1, 0.1, 0.2, 0.3, 0.4}
	if len(values) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(values))
	}
	for i := range want {
		if math.Abs(values[i]-want[i]) > 1e-12 {
			t.Errorf("pore %d: want %v, got %v", i, want[i], values[i])
		}
	}
}

func TestFromNeighborThroats_MaxOverChain(t *testing.T) {
	p := seededChain(t)

	values, err := FromNeighborThroats(p.FullDomain(), core.Params{"mode": "max"})
	if err != nil {
		t.Fatalf("FromNeighborThroats failed: %v", err)
	}

	want := []float64{0.1, 0.2, 0.3, 0.4, 0.4}
	for i := range want {
		if math.Abs(values[i]-want[i]) > 1e-12 {
			t.Errorf("pore %d: want %v, got %v", i, want[i], values[i])
		}
	}
}

func TestFromNeighborThroats_MeanSingleIncidence(t *testing.T) {
	// two pores, one throat: every pore has exactly one incident throat,
	// mean returns that throat's value unchanged
	p := quietProject(t, 2, [][2]int{{0, 1}})
	p.FullDomain().Store().Set("throat.seed", []float64{0.7})

	values, err := FromNeighborThroats(p.FullDomain(), core.Params{"mode": "mean"})
	if err != nil {
		t.Fatalf("FromNeighborThroats failed: %v", err)
	}
	if values[0] != 0.7 || values[1] != 0.7 {
		t.Errorf("expected [0.7 0.7], got %v", values)
	}
}

func TestFromNeighborThroats_ZeroIncidence(t *testing.T) {
	// pore 2 has no throats at all
	p := quietProject(t, 3, [][2]int{{0, 1}})
	p.FullDomain().Store().Set("throat.seed", []float64{0.5})

	minVals, err := FromNeighborThroats(p.FullDomain(), core.Params{"mode": "min"})
	if err != nil {
		t.Fatalf("min failed: %v", err)
	}
	if !math.IsInf(minVals[2], 1) {
		t.Errorf("zero-incidence pore should be +Inf for min, got %v", minVals[2])
	}

	maxVals, err := FromNeighborThroats(p.FullDomain(), core.Params{"mode": "max"})
	if err != nil {
		t.Fatalf("max failed: %v", err)
	}
	if !math.IsInf(maxVals[2], -1) {
		t.Errorf("zero-incidence pore should be -Inf for max, got %v", maxVals[2])
	}

	meanVals, err := FromNeighborThroats(p.FullDomain(), core.Params{"mode": "mean"})
	if err != nil {
		t.Fatalf("mean must not fail on zero incidence: %v", err)
	}
	if !math.IsNaN(meanVals[2]) {
		t.Errorf("zero-incidence pore should be NaN for mean, got %v", meanVals[2])
	}
}

func TestFromNeighborThroats_RestrictedToSubdomain(t *testing.T) {
	p := seededChain(t)
	geo, err := p.AddGeometry(core.GeometryConfig{Name: "geo", Pores: []int{2, 3}})
	if err != nil {
		t.Fatalf("AddGeometry failed: %v", err)
	}

	values, err := FromNeighborThroats(geo, core.Params{"mode": "min"})
	if err != nil {
		t.Fatalf("FromNeighborThroats failed: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("result must match the target's pore count, got %d", len(values))
	}
	// full-network result [0.1 0.1 0.2 0.3 0.4] restricted to pores {2,3}
	if values[0] != 0.2 || values[1] != 0.3 {
		t.Errorf("expected [0.2 0.3], got %v", values)
	}
}

func TestFromNeighborThroats_UnknownMode(t *testing.T) {
	p := seededChain(t)
	if _, err := FromNeighborThroats(p.FullDomain(), core.Params{"mode": "median"}); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestFromNeighborPores_Modes(t *testing.T) {
	p := quietProject(t, 3, [][2]int{{0, 1}, {1, 2}})
	p.FullDomain().Store().Set("pore.seed", []float64{1.0, 3.0, 5.0})

	minVals, err := FromNeighborPores(p.FullDomain(), core.Params{"mode": "min"})
	if err != nil {
		t.Fatalf("min failed: %v", err)
	}
	if minVals[0] != 1.0 || minVals[1] != 3.0 {
		t.Errorf("min: expected [1 3], got %v", minVals)
	}

	maxVals, _ := FromNeighborPores(p.FullDomain(), core.Params{"mode": "max"})
	if maxVals[0] != 3.0 || maxVals[1] != 5.0 {
		t.Errorf("max: expected [3 5], got %v", maxVals)
	}

	meanVals, _ := FromNeighborPores(p.FullDomain(), core.Params{"mode": "mean"})
	if meanVals[0] != 2.0 || meanVals[1] != 4.0 {
		t.Errorf("mean: expected [2 4], got %v", meanVals)
	}
}

func TestFromNeighborPores_IgnoreNaNs(t *testing.T) {
	p := quietProject(t, 2, [][2]int{{0, 1}})
	p.FullDomain().Store().Set("pore.seed", []float64{math.NaN(), 4.0})

	// masked: the NaN endpoint drops out for every mode
	for _, mode := range []string{"min", "max", "mean"} {
		values, err := FromNeighborPores(p.FullDomain(), core.Params{"mode": mode})
		if err != nil {
			t.Fatalf("%s failed: %v", mode, err)
		}
		if values[0] != 4.0 {
			t.Errorf("%s with ignore_nans: expected 4.0, got %v", mode, values[0])
		}
	}

	// unmasked: NaN propagates
	values, err := FromNeighborPores(p.FullDomain(), core.Params{"mode": "min", "ignore_nans": false})
	if err != nil {
		t.Fatalf("min failed: %v", err)
	}
	if !math.IsNaN(values[0]) {
		t.Errorf("without ignore_nans NaN should propagate, got %v", values[0])
	}
}

func TestFromNeighborThroats_AfterTrimPores(t *testing.T) {
	p := seededChain(t)
	geo, err := p.AddGeometry(core.GeometryConfig{Name: "geo", Pores: []int{2, 3}})
	if err != nil {
		t.Fatalf("AddGeometry failed: %v", err)
	}

	if err := p.Network().TrimPores([]int{0}); err != nil {
		t.Fatalf("TrimPores failed: %v", err)
	}
	// the chain is now 0-1-2-3; reseed the surviving throats
	if err := p.FullDomain().Store().Set("throat.seed", []float64{0.2, 0.3, 0.4}); err != nil {
		t.Fatalf("reseeding failed: %v", err)
	}

	// the geometry follows the renumbering to pores {1,2}
	values, err := FromNeighborThroats(geo, core.Params{"mode": "min"})
	if err != nil {
		t.Fatalf("FromNeighborThroats failed: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("result must match the target's pore count, got %d", len(values))
	}
	if values[0] != 0.2 || values[1] != 0.3 {
		t.Errorf("expected [0.2 0.3], got %v", values)
	}
}

func TestFromNeighborPores_EmptyThroatSet(t *testing.T) {
	// a geometry over an isolated pore owns no throats
	p := quietProject(t, 3, [][2]int{{0, 1}})
	p.FullDomain().Store().Set("pore.seed", []float64{1, 2, 3})
	geo, err := p.AddGeometry(core.GeometryConfig{Name: "geo", Pores: []int{2}})
	if err != nil {
		t.Fatalf("AddGeometry failed: %v", err)
	}

	values, err := FromNeighborPores(geo, core.Params{"mode": "mean"})
	if err != nil {
		t.Fatalf("empty neighbor set must not error: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("expected empty result, got %v", values)
	}
}
