package recipe

import (
	"errors"
	"fmt"

	"github.com/NaiveSK/OpenPNM/pkg/core"
	"github.com/NaiveSK/OpenPNM/pkg/network"

	// register the model library
	_ "github.com/NaiveSK/OpenPNM/pkg/models"
)

// Build generates the network described by the recipe, attaches every
// object and registers their models. Unknown model names are skipped with a
// warning, matching registration semantics elsewhere. Callers regenerate
// with Project.RegenerateAll.
func Build(r *Recipe, cfg core.ProjectConfig) (*core.Project, error) {
	net, err := buildNetwork(r.Network)
	if err != nil {
		return nil, err
	}
	proj := core.NewProjectWithConfig(net, cfg)

	geos := make(map[string]*core.Base, len(r.Geometries))
	for _, gs := range r.Geometries {
		selector := gs.Pores
		if selector == "" {
			selector = network.LabelAll
		}
		pores, err := net.Pores(selector)
		if err != nil {
			return nil, fmt.Errorf("geometry %q: %w", gs.Name, err)
		}
		geo, err := proj.AddGeometry(core.GeometryConfig{
			Name:         gs.Name,
			Pores:        pores,
			AllowOverlap: gs.AllowOverlap,
		})
		if err != nil {
			return nil, err
		}
		if err := bindModels(geo, gs.Models); err != nil {
			return nil, err
		}
		geos[gs.Name] = geo
	}

	phases := make(map[string]*core.Base, len(r.Phases))
	for _, ps := range r.Phases {
		phase, err := proj.AddPhase(core.PhaseConfig{Name: ps.Name})
		if err != nil {
			return nil, err
		}
		if err := bindModels(phase, ps.Models); err != nil {
			return nil, err
		}
		phases[ps.Name] = phase
	}

	for _, ps := range r.Physics {
		phase, ok := phases[ps.Phase]
		if !ok {
			return nil, fmt.Errorf("physics %q: unknown phase %q", ps.Name, ps.Phase)
		}
		geo, ok := geos[ps.Geometry]
		if !ok {
			return nil, fmt.Errorf("physics %q: unknown geometry %q", ps.Name, ps.Geometry)
		}
		phys, err := proj.AddPhysics(core.PhysicsConfig{
			Name:     ps.Name,
			Phase:    phase,
			Geometry: geo,
		})
		if err != nil {
			return nil, err
		}
		if err := bindModels(phys, ps.Models); err != nil {
			return nil, err
		}
	}

	return proj, nil
}

func buildNetwork(spec NetworkSpec) (*network.Network, error) {
	switch spec.Kind {
	case "cubic":
		return network.NewCubic(spec.Shape, spec.Spacing)
	default:
		return nil, fmt.Errorf("unknown network kind %q", spec.Kind)
	}
}

func bindModels(target *core.Base, specs []ModelSpec) error {
	for _, m := range specs {
		err := target.Models().Add(m.Prop, m.Model, core.Params(m.Params), m.DependsOn...)
		if err != nil {
			// unresolved names are logged and skipped by the registry;
			// anything else is a hard failure
			if !isModelNotFound(err) {
				return err
			}
		}
	}
	return nil
}

func isModelNotFound(err error) bool {
	return errors.Is(err, core.ErrModelNotFound)
}
