package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/NaiveSK/OpenPNM/pkg/core"
)

// Geometry models: structural properties computed from seed values and from
// one another.

// LargestSphere computes pore diameters by pushing seed values through the
// inverse CDF (percent-point function) of a size distribution.
// Params: seeds (source key, default "pore.seed"), distribution ("weibull",
// "normal" or "uniform", default "weibull"), shape, loc, scale, offset.
func LargestSphere(target core.Target, params core.Params) ([]float64, error) {
	seedsKey := params.String("seeds", "pore.seed")
	seeds, err := target.Store().Get(seedsKey)
	if err != nil {
		return nil, err
	}

	name := params.String("distribution", "weibull")
	shape := params.Float("shape", 1.5)
	loc := params.Float("loc", 0)
	scale := params.Float("scale", 1)
	offset := params.Float("offset", 0)

	var quantile func(float64) float64
	switch name {
	case "weibull":
		dist := distuv.Weibull{K: shape, Lambda: scale}
		quantile = func(p float64) float64 { return dist.Quantile(p) + loc }
	case "normal":
		dist := distuv.Normal{Mu: loc, Sigma: scale}
		quantile = dist.Quantile
	case "uniform":
		dist := distuv.Uniform{Min: loc, Max: loc + scale}
		quantile = dist.Quantile
	default:
		return nil, fmt.Errorf("unknown distribution %q", name)
	}

	out := make([]float64, len(seeds))
	for i, s := range seeds {
		out[i] = quantile(s) + offset
	}
	return out, nil
}

// SphereVolume computes pore volumes for spherical bodies.
// Params: diameter (source key, default "pore.diameter").
func SphereVolume(target core.Target, params core.Params) ([]float64, error) {
	diameters, err := target.Store().Get(params.String("diameter", "pore.diameter"))
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(diameters))
	for i, d := range diameters {
		out[i] = math.Pi / 6 * d * d * d
	}
	return out, nil
}

// EquivalentDiameter computes the diameter of the sphere with the same
// volume.
// Params: volume (source key, default "pore.volume").
func EquivalentDiameter(target core.Target, params core.Params) ([]float64, error) {
	volumes, err := target.Store().Get(params.String("volume", "pore.volume"))
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(volumes))
	for i, v := range volumes {
		out[i] = math.Cbrt(6 * v / math.Pi)
	}
	return out, nil
}

// CylinderVolume computes throat volumes for cylindrical constrictions.
// Params: diameter (source key, default "throat.diameter"), length (source
// key, default "throat.length").
func CylinderVolume(target core.Target, params core.Params) ([]float64, error) {
	diameters, err := target.Store().Get(params.String("diameter", "throat.diameter"))
	if err != nil {
		return nil, err
	}
	lengths, err := target.Store().Get(params.String("length", "throat.length"))
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(diameters))
	for i := range out {
		out[i] = math.Pi / 4 * diameters[i] * diameters[i] * lengths[i]
	}
	return out, nil
}
