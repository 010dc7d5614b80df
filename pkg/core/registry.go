package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/NaiveSK/OpenPNM/pkg/logging"
)

// ModelEntry binds a property name to a model function with its parameters
// and declared dependencies. Entries are immutable; re-adding a property
// replaces the whole entry.
type ModelEntry struct {
	Prop      string
	Model     string
	Fn        ModelFunc
	Params    Params
	DependsOn []string

	seq int
}

// ModelRegistry stores the models of one object and re-executes them on
// demand. Execution is sequential and deterministic: entries run in
// dependency order, ties broken by registration order.
type ModelRegistry struct {
	owner   *Base
	entries []*ModelEntry
	nextSeq int
}

func newModelRegistry(owner *Base) *ModelRegistry {
	return &ModelRegistry{owner: owner}
}

func (r *ModelRegistry) logger() logging.Logger {
	return r.owner.project.log.With(logging.String("object", r.owner.name))
}

// Add resolves a model name against the library and registers it for the
// given property. An unresolvable name is logged and reported without
// touching the registry, so bulk setup can continue past it.
func (r *ModelRegistry) Add(prop, model string, params Params, dependsOn ...string) error {
	fn, ok := LookupModel(model)
	if !ok {
		r.logger().Warn("model not found, registration skipped",
			logging.String("prop", prop),
			logging.String("model", model),
		)
		return &DataError{
			Op:     "Add",
			Object: r.owner.name,
			Key:    prop,
			Cause:  fmt.Errorf("%w: %q", ErrModelNotFound, model),
		}
	}
	return r.AddFunc(prop, model, fn, params, dependsOn...)
}

// AddFunc registers a model function directly under the given name. Adding a
// property that already has a model replaces the entry in place, keeping its
// position in the regeneration order.
func (r *ModelRegistry) AddFunc(prop, model string, fn ModelFunc, params Params, dependsOn ...string) error {
	if _, err := KeyKind(prop); err != nil {
		return err
	}
	if params == nil {
		params = Params{}
	}

	for i, e := range r.entries {
		if e.Prop == prop {
			r.entries[i] = &ModelEntry{Prop: prop, Model: model, Fn: fn, Params: params, DependsOn: dependsOn, seq: e.seq}
			return nil
		}
	}

	r.entries = append(r.entries, &ModelEntry{
		Prop:      prop,
		Model:     model,
		Fn:        fn,
		Params:    params,
		DependsOn: dependsOn,
		seq:       r.nextSeq,
	})
	r.nextSeq++
	return nil
}

// Remove detaches the model for a property. The stored array, if any, stays
// in the property store.
func (r *ModelRegistry) Remove(prop string) {
	for i, e := range r.entries {
		if e.Prop == prop {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered models
func (r *ModelRegistry) Len() int { return len(r.entries) }

// Props returns the registered property names in regeneration order
func (r *ModelRegistry) Props() ([]string, error) {
	ordered, err := r.order()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(ordered))
	for i, e := range ordered {
		out[i] = e.Prop
	}
	return out, nil
}

// Entry returns the entry registered for a property
func (r *ModelRegistry) Entry(prop string) (*ModelEntry, bool) {
	for _, e := range r.entries {
		if e.Prop == prop {
			return e, true
		}
	}
	return nil, false
}

// order resolves the execution order with Kahn's algorithm over the declared
// dependency edges. Dependencies naming properties without a registered model
// are assumed to be satisfied externally (e.g. written by hand or collected
// from another object) and impose no ordering.
func (r *ModelRegistry) order() ([]*ModelEntry, error) {
	byProp := make(map[string]*ModelEntry, len(r.entries))
	inDegree := make(map[string]int, len(r.entries))
	for _, e := range r.entries {
		byProp[e.Prop] = e
		inDegree[e.Prop] = 0
	}

	dependents := make(map[string][]string)
	for _, e := range r.entries {
		for _, dep := range e.DependsOn {
			if _, ok := byProp[dep]; ok {
				inDegree[e.Prop]++
				dependents[dep] = append(dependents[dep], e.Prop)
			}
		}
	}

	queue := make([]*ModelEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if inDegree[e.Prop] == 0 {
			queue = append(queue, e)
		}
	}
	sort.Slice(queue, func(i, j int) bool { return queue[i].seq < queue[j].seq })

	sorted := make([]*ModelEntry, 0, len(r.entries))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		sorted = append(sorted, current)

		released := make([]*ModelEntry, 0)
		for _, prop := range dependents[current.Prop] {
			inDegree[prop]--
			if inDegree[prop] == 0 {
				released = append(released, byProp[prop])
			}
		}
		sort.Slice(released, func(i, j int) bool { return released[i].seq < released[j].seq })
		queue = append(queue, released...)
	}

	if len(sorted) != len(r.entries) {
		return nil, &DataError{Op: "order", Object: r.owner.name, Cause: ErrModelCycle}
	}
	return sorted, nil
}

// Regenerate re-invokes every registered model in dependency order, writing
// each result into the property store. The first failure aborts the pass and
// is returned as a ModelExecutionError carrying the property name. Models
// already executed keep their results; there is no rollback.
func (r *ModelRegistry) Regenerate() error {
	r.owner.project.refreshFullDomain()
	log := r.logger()
	met := r.owner.project.metrics

	ordered, err := r.order()
	if err != nil {
		met.RecordRegeneration(r.owner.name, "error")
		return err
	}

	for _, e := range ordered {
		// models receive their bound property key so they can infer the
		// element kind they must produce
		bound := e.Params.Clone()
		bound["propname"] = e.Prop

		start := time.Now()
		values, err := e.Fn(r.owner, bound)
		met.RecordModel(e.Model, time.Since(start), err)
		if err != nil {
			met.RecordRegeneration(r.owner.name, "error")
			log.Error("model execution failed",
				logging.String("prop", e.Prop),
				logging.String("model", e.Model),
				logging.Error(err),
			)
			return &ModelExecutionError{Prop: e.Prop, Model: e.Model, Cause: err}
		}

		if err := r.owner.store.Set(e.Prop, values); err != nil {
			met.RecordRegeneration(r.owner.name, "error")
			return &ModelExecutionError{Prop: e.Prop, Model: e.Model, Cause: err}
		}
		kind, _ := KeyKind(e.Prop)
		met.RecordPropertyWrite(kind)
		log.Debug("regenerated property", logging.String("prop", e.Prop), logging.String("model", e.Model))
	}

	met.RecordRegeneration(r.owner.name, "ok")
	log.Info("regeneration pass complete", logging.Int("models", len(ordered)))
	return nil
}
