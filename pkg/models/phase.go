package models

import (
	"math"

	"github.com/NaiveSK/OpenPNM/pkg/core"
)

// Phase models: thermophysical correlations evaluated over a phase's
// elements.

// WaterViscosity computes liquid water viscosity in Pa·s from temperature
// via the Vogel equation mu = A*10^(B/(T-C)).
// Params: temperature (source key, default "pore.temperature"; a constant
// fallback of 298.15 K applies when the property is absent).
func WaterViscosity(target core.Target, params core.Params) ([]float64, error) {
	count, err := boundCount(target, params)
	if err != nil {
		return nil, err
	}

	const (
		a = 2.414e-5
		b = 247.8
		c = 140.0
	)

	temps, err := target.Store().Get(params.String("temperature", "pore.temperature"))
	if err != nil {
		fallback := params.Float("T", 298.15)
		temps = make([]float64, count)
		for i := range temps {
			temps[i] = fallback
		}
	}
	if len(temps) != count {
		return nil, core.ShapeMismatchError("WaterViscosity", target.Name(), "pore.temperature", count, len(temps))
	}

	out := make([]float64, count)
	for i, t := range temps {
		out[i] = a * math.Pow(10, b/(t-c))
	}
	return out, nil
}

// Linear computes A*x + B over a source property.
// Params: prop (source key), A (default 1), B (default 0).
func Linear(target core.Target, params core.Params) ([]float64, error) {
	values, err := target.Store().Get(params.String("prop", ""))
	if err != nil {
		return nil, err
	}
	a := params.Float("A", 1)
	b := params.Float("B", 0)
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = a*v + b
	}
	return out, nil
}
