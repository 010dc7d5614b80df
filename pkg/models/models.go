// Package models holds the built-in model function library: parameterized
// computations producing one named property array each, registered by name
// so objects can bind them through their model registry.
package models

import (
	"fmt"

	"github.com/NaiveSK/OpenPNM/pkg/core"
)

func init() {
	core.RegisterModel("misc.constant", Constant)
	core.RegisterModel("misc.random", Random)
	core.RegisterModel("misc.scaled", Scaled)
	core.RegisterModel("misc.product", Product)

	core.RegisterModel("neighbor.from_throats", FromNeighborThroats)
	core.RegisterModel("neighbor.from_pores", FromNeighborPores)

	core.RegisterModel("geometry.largest_sphere", LargestSphere)
	core.RegisterModel("geometry.sphere_volume", SphereVolume)
	core.RegisterModel("geometry.equivalent_diameter", EquivalentDiameter)
	core.RegisterModel("geometry.cylinder_volume", CylinderVolume)

	core.RegisterModel("phase.water_viscosity", WaterViscosity)
	core.RegisterModel("phase.linear", Linear)
}

// elementCount returns the target's element count for the kind implied by a
// property key
func elementCount(target core.Target, key string) (int, error) {
	kind, err := core.KeyKind(key)
	if err != nil {
		return 0, err
	}
	if kind == "pore" {
		return target.NumPores(), nil
	}
	return target.NumThroats(), nil
}

// boundCount resolves the count for the property the model is bound to
func boundCount(target core.Target, params core.Params) (int, error) {
	key := params.String("propname", "")
	if key == "" {
		return 0, fmt.Errorf("model invoked without a bound property")
	}
	return elementCount(target, key)
}
