package models

import (
	"errors"
	"math"
	"testing"

	"github.com/NaiveSK/OpenPNM/pkg/core"
)

func fullGeometry(t *testing.T, p *core.Project) *core.Base {
	t.Helper()
	pores, err := p.Network().Pores("all")
	if err != nil {
		t.Fatalf("Pores failed: %v", err)
	}
	geo, err := p.AddGeometry(core.GeometryConfig{Name: "geo", Pores: pores})
	if err != nil {
		t.Fatalf("AddGeometry failed: %v", err)
	}
	return geo
}

func TestConstant(t *testing.T) {
	p := quietProject(t, 3, [][2]int{{0, 1}, {1, 2}})
	geo := fullGeometry(t, p)

	if err := geo.Models().Add("pore.temperature", "misc.constant", core.Params{"value": 353.15}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := geo.Regenerate(); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}

	values, _ := geo.Store().Get("pore.temperature")
	if len(values) != 3 || values[1] != 353.15 {
		t.Errorf("unexpected values: %v", values)
	}
}

func TestConstant_ThroatKindInferred(t *testing.T) {
	p := quietProject(t, 3, [][2]int{{0, 1}, {1, 2}})
	geo := fullGeometry(t, p)

	geo.Models().Add("throat.factor", "misc.constant", core.Params{"value": 2.0})
	if err := geo.Regenerate(); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	values, _ := geo.Store().Get("throat.factor")
	if len(values) != geo.NumThroats() {
		t.Errorf("throat property must match throat count: %v", values)
	}
}

func TestRandom_Reproducible(t *testing.T) {
	p := quietProject(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}})
	geo := fullGeometry(t, p)

	geo.Models().Add("pore.seed", "misc.random", core.Params{"seed": 42})
	if err := geo.Regenerate(); err != nil {
		t.Fatalf("Regenerate failed: %v", err)
	}
	first, _ := geo.Store().Get("pore.seed")
	snapshot := append([]float64(nil), first...)

	if err := geo.Regenerate(); err != nil {
		t.Fatalf("second Regenerate failed: %v", err)
	}
	second, _ := geo.Store().Get("pore.seed")

	for i := range snapshot {
		if second[i] != snapshot[i] {
			t.Fatalf("seeded random must be reproducible, %v vs %v", snapshot, second)
		}
		if second[i] < 0 || second[i] >= 1 {
			t.Errorf("value out of [0,1): %v", second[i])
		}
	}
}

func TestScaledAndProduct(t *testing.T) {
	p := quietProject(t, 2, [][2]int{{0, 1}})
	geo := fullGeometry(t, p)

	geo.Store().Set("pore.a", []float64{2, 3})
	geo.Store().Set("pore.b", []float64{5, 7})

	scaled, err := Scaled(geo, core.Params{"prop": "pore.a", "factor": 10.0})
	if err != nil {
		t.Fatalf("Scaled failed: %v", err)
	}
	if scaled[0] != 20 || scaled[1] != 30 {
		t.Errorf("unexpected scaled values: %v", scaled)
	}

	product, err := Product(geo, core.Params{"props": []string{"pore.a", "pore.b"}})
	if err != nil {
		t.Fatalf("Product failed: %v", err)
	}
	if product[0] != 10 || product[1] != 21 {
		t.Errorf("unexpected product values: %v", product)
	}

	if _, err := Product(geo, core.Params{}); err == nil {
		t.Error("Product without sources should fail")
	}
}

func TestProduct_MixedKindsRejected(t *testing.T) {
	p := quietProject(t, 3, [][2]int{{0, 1}})
	full := p.FullDomain()
	full.Store().Set("pore.a", []float64{1, 2, 3})
	full.Store().Set("throat.b", []float64{2})

	_, err := Product(full, core.Params{"props": []string{"pore.a", "throat.b"}})
	if !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestScaled_MissingSource(t *testing.T) {
	p := quietProject(t, 2, [][2]int{{0, 1}})
	geo := fullGeometry(t, p)

	if _, err := Scaled(geo, core.Params{"prop": "pore.ghost"}); err == nil {
		t.Error("expected error for missing source property")
	}
}

func TestWaterViscosity_Fallback(t *testing.T) {
	p := quietProject(t, 2, [][2]int{{0, 1}})
	geo := fullGeometry(t, p)

	values, err := WaterViscosity(geo, core.Params{"propname": "pore.viscosity"})
	if err != nil {
		t.Fatalf("WaterViscosity failed: %v", err)
	}
	// ~0.89 mPa·s at 298.15 K
	if math.Abs(values[0]-8.9e-4) > 1e-4 {
		t.Errorf("unexpected viscosity at 298 K: %v", values[0])
	}
}

func TestLinear(t *testing.T) {
	p := quietProject(t, 2, [][2]int{{0, 1}})
	geo := fullGeometry(t, p)
	geo.Store().Set("pore.x", []float64{1, 2})

	values, err := Linear(geo, core.Params{"prop": "pore.x", "A": 3.0, "B": 1.0})
	if err != nil {
		t.Fatalf("Linear failed: %v", err)
	}
	if values[0] != 4 || values[1] != 7 {
		t.Errorf("unexpected values: %v", values)
	}
}
