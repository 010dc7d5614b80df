package models

import (
	"fmt"
	"math"

	"github.com/NaiveSK/OpenPNM/pkg/core"
)

// Neighbor-aggregation models: adopt a value for each element from the
// values found on its incident neighbors of the other kind.

// FromNeighborThroats produces a per-pore array by reducing the values of
// each pore's incident throats. The source property is read over the full
// network, reduced per pore through the incidence matrix, then restricted to
// the target's pores.
// Params: prop (source key, default "throat.seed"), mode ("min", "max" or
// "mean", default "min").
//
// A pore with no incident throats yields +Inf for min, -Inf for max and NaN
// for mean; none of these are errors and none are clamped. NaN source values
// propagate into the reduction.
func FromNeighborThroats(target core.Target, params core.Params) ([]float64, error) {
	prop := params.String("prop", "throat.seed")
	mode := params.String("mode", "min")

	prj := target.Project()
	net := prj.Network()

	data, err := prj.CollectThroatData(prop)
	if err != nil {
		return nil, err
	}

	rows, cols := net.IncidenceMatrix()
	values := make([]float64, net.NumPores())

	switch mode {
	case "min":
		for i := range values {
			values[i] = math.Inf(1)
		}
		for i := range rows {
			values[rows[i]] = math.Min(values[rows[i]], data[cols[i]])
		}
	case "max":
		for i := range values {
			values[i] = math.Inf(-1)
		}
		for i := range rows {
			values[rows[i]] = math.Max(values[rows[i]], data[cols[i]])
		}
	case "mean":
		counts := make([]float64, net.NumPores())
		for i := range rows {
			values[rows[i]] += data[cols[i]]
			counts[rows[i]]++
		}
		for i := range values {
			// zero neighbors divides to NaN, which propagates
			values[i] /= counts[i]
		}
	default:
		return nil, fmt.Errorf("unknown aggregation mode %q", mode)
	}

	out := make([]float64, target.NumPores())
	for i, g := range target.Pores() {
		out[i] = values[g]
	}
	return out, nil
}

// FromNeighborPores produces a per-throat array by reducing the values of
// each throat's two endpoint pores.
// Params: prop (source key, default "pore.seed"), mode ("min", "max" or
// "mean", default "min"), ignore_nans (default true).
//
// With ignore_nans set, NaN endpoint values are masked out of the reduction
// for every mode; a throat whose endpoints are both NaN stays NaN. An empty
// throat set yields an empty result, not an error.
func FromNeighborPores(target core.Target, params core.Params) ([]float64, error) {
	prop := params.String("prop", "pore.seed")
	mode := params.String("mode", "min")
	ignoreNaNs := params.Bool("ignore_nans", true)

	prj := target.Project()
	net := prj.Network()

	throats := target.Throats()
	if len(throats) == 0 {
		return []float64{}, nil
	}

	pairs, err := net.ConnectedPores(throats)
	if err != nil {
		return nil, err
	}
	data, err := prj.CollectPoreData(prop)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(pairs))
	for i, pair := range pairs {
		v1, v2 := data[pair[0]], data[pair[1]]

		candidates := make([]float64, 0, 2)
		for _, v := range []float64{v1, v2} {
			if ignoreNaNs && math.IsNaN(v) {
				continue
			}
			candidates = append(candidates, v)
		}
		if len(candidates) == 0 {
			out[i] = math.NaN()
			continue
		}

		switch mode {
		case "min":
			v := candidates[0]
			for _, c := range candidates[1:] {
				v = math.Min(v, c)
			}
			out[i] = v
		case "max":
			v := candidates[0]
			for _, c := range candidates[1:] {
				v = math.Max(v, c)
			}
			out[i] = v
		case "mean":
			sum := 0.0
			for _, c := range candidates {
				sum += c
			}
			out[i] = sum / float64(len(candidates))
		default:
			return nil, fmt.Errorf("unknown aggregation mode %q", mode)
		}
	}
	return out, nil
}
