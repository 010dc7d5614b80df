package core

import (
	"sort"
	"sync"
)

// ModelFunc is the model function interface: a callable receiving the owning
// object and its bound parameters, returning one array whose length must
// equal the target's element count for the property's kind. During a
// regeneration pass the registry sets params["propname"] to the property key
// the result will be stored under.
type ModelFunc func(target Target, params Params) ([]float64, error)

var (
	libraryMu sync.RWMutex
	library   = make(map[string]ModelFunc)
)

// RegisterModel adds a named model function to the global library. Model
// packages register themselves in init(); later registrations under the same
// name replace earlier ones.
func RegisterModel(name string, fn ModelFunc) {
	libraryMu.Lock()
	defer libraryMu.Unlock()
	library[name] = fn
}

// LookupModel resolves a model name against the library
func LookupModel(name string) (ModelFunc, bool) {
	libraryMu.RLock()
	defer libraryMu.RUnlock()
	fn, ok := library[name]
	return fn, ok
}

// ModelNames returns the sorted names of all registered models
func ModelNames() []string {
	libraryMu.RLock()
	defer libraryMu.RUnlock()
	names := make([]string, 0, len(library))
	for name := range library {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
