// Package recipe builds complete projects from declarative YAML documents:
// a network description plus the geometries, phases and physics to attach,
// each with its model bindings.
package recipe

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/NaiveSK/OpenPNM/pkg/core"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Recipe is the top-level document
type Recipe struct {
	Name       string         `yaml:"name" validate:"required"`
	Network    NetworkSpec    `yaml:"network" validate:"required"`
	Geometries []GeometrySpec `yaml:"geometries" validate:"dive"`
	Phases     []PhaseSpec    `yaml:"phases" validate:"dive"`
	Physics    []PhysicsSpec  `yaml:"physics" validate:"dive"`
}

// NetworkSpec describes the topology to generate
type NetworkSpec struct {
	Kind    string  `yaml:"kind" validate:"required,oneof=cubic"`
	Shape   [3]int  `yaml:"shape"`
	Spacing float64 `yaml:"spacing" validate:"gt=0"`
}

// ModelSpec binds one model to one property
type ModelSpec struct {
	Prop      string         `yaml:"prop" validate:"required"`
	Model     string         `yaml:"model" validate:"required"`
	Params    map[string]any `yaml:"params"`
	DependsOn []string       `yaml:"depends_on"`
}

// GeometrySpec describes a geometry to attach. Pores is a label selector
// resolved against the network ("all" by default).
type GeometrySpec struct {
	Name         string      `yaml:"name" validate:"required"`
	Pores        string      `yaml:"pores"`
	AllowOverlap bool        `yaml:"allow_overlap"`
	Models       []ModelSpec `yaml:"models" validate:"dive"`
}

// PhaseSpec describes a phase to attach
type PhaseSpec struct {
	Name   string      `yaml:"name" validate:"required"`
	Models []ModelSpec `yaml:"models" validate:"dive"`
}

// PhysicsSpec describes a physics object to attach, referencing its phase
// and geometry by name
type PhysicsSpec struct {
	Name     string      `yaml:"name" validate:"required"`
	Phase    string      `yaml:"phase" validate:"required"`
	Geometry string      `yaml:"geometry" validate:"required"`
	Models   []ModelSpec `yaml:"models" validate:"dive"`
}

// Parse unmarshals and validates a YAML recipe
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse recipe: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks the recipe against its struct tags and the property-key
// rules
func (r *Recipe) Validate() error {
	if err := validate.Struct(r); err != nil {
		return formatValidationError(err)
	}

	if r.Network.Kind == "cubic" {
		for _, extent := range r.Network.Shape {
			if extent < 1 {
				return fmt.Errorf("network.shape: extents must be positive, got %v", r.Network.Shape)
			}
		}
	}

	var specs []ModelSpec
	for _, g := range r.Geometries {
		specs = append(specs, g.Models...)
	}
	for _, p := range r.Phases {
		specs = append(specs, p.Models...)
	}
	for _, p := range r.Physics {
		specs = append(specs, p.Models...)
	}
	for _, m := range specs {
		if _, err := core.KeyKind(m.Prop); err != nil {
			return fmt.Errorf("model prop %q: must carry a pore. or throat. prefix", m.Prop)
		}
	}
	return nil
}

// formatValidationError flattens validator errors into a readable message
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid recipe: %s", strings.Join(parts, "; "))
}
