package models

import (
	"math/rand"

	"github.com/NaiveSK/OpenPNM/pkg/core"
)

// Constant fills the bound property with a single value.
// Params: value (float, default 0).
func Constant(target core.Target, params core.Params) ([]float64, error) {
	count, err := boundCount(target, params)
	if err != nil {
		return nil, err
	}
	value := params.Float("value", 0)
	out := make([]float64, count)
	for i := range out {
		out[i] = value
	}
	return out, nil
}

// Random fills the bound property with uniform values in [lo, hi). A fixed
// seed makes regeneration reproducible.
// Params: seed (int, default 0), lo (default 0), hi (default 1).
func Random(target core.Target, params core.Params) ([]float64, error) {
	count, err := boundCount(target, params)
	if err != nil {
		return nil, err
	}
	lo := params.Float("lo", 0)
	hi := params.Float("hi", 1)
	rng := rand.New(rand.NewSource(int64(params.Int("seed", 0))))

	out := make([]float64, count)
	for i := range out {
		out[i] = lo + (hi-lo)*rng.Float64()
	}
	return out, nil
}

// Scaled multiplies a source property of the target by a factor.
// Params: prop (source key), factor (default 1).
func Scaled(target core.Target, params core.Params) ([]float64, error) {
	prop := params.String("prop", "")
	values, err := target.Store().Get(prop)
	if err != nil {
		return nil, err
	}
	factor := params.Float("factor", 1)
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * factor
	}
	return out, nil
}

// Product multiplies several source properties of the target element-wise.
// Params: props (list of source keys, at least one).
func Product(target core.Target, params core.Params) ([]float64, error) {
	props := params.Strings("props")
	if len(props) == 0 {
		return nil, &core.DataError{Op: "Product", Object: target.Name(), Cause: core.ErrInvalidKey}
	}

	out, err := target.Store().Get(props[0])
	if err != nil {
		return nil, err
	}
	acc := make([]float64, len(out))
	copy(acc, out)

	for _, prop := range props[1:] {
		values, err := target.Store().Get(prop)
		if err != nil {
			return nil, err
		}
		if len(values) != len(acc) {
			return nil, core.ShapeMismatchError("Product", target.Name(), prop, len(acc), len(values))
		}
		for i := range acc {
			acc[i] *= values[i]
		}
	}
	return acc, nil
}
