package core

import (
	"sort"
	"strings"
)

// Key prefixes determining which element count an array must match
const (
	PorePrefix   = "pore."
	ThroatPrefix = "throat."
)

// PropertyStore holds the named per-element arrays of one object. Numeric
// data and boolean label masks are kept in separate tables; both are checked
// against the owner's element count for the key's prefix on every write.
type PropertyStore struct {
	owner string
	np    int
	nt    int

	data   map[string][]float64
	labels map[string][]bool
}

// NewPropertyStore creates a store scoped to an object owning np pores and
// nt throats
func NewPropertyStore(owner string, np, nt int) *PropertyStore {
	return &PropertyStore{
		owner:  owner,
		np:     np,
		nt:     nt,
		data:   make(map[string][]float64),
		labels: make(map[string][]bool),
	}
}

// KeyKind returns "pore" or "throat" for a well-formed property key
func KeyKind(key string) (string, error) {
	switch {
	case strings.HasPrefix(key, PorePrefix) && len(key) > len(PorePrefix):
		return "pore", nil
	case strings.HasPrefix(key, ThroatPrefix) && len(key) > len(ThroatPrefix):
		return "throat", nil
	default:
		return "", &DataError{Op: "KeyKind", Key: key, Cause: ErrInvalidKey}
	}
}

func (s *PropertyStore) countFor(key string) (int, error) {
	kind, err := KeyKind(key)
	if err != nil {
		return 0, err
	}
	if kind == "pore" {
		return s.np, nil
	}
	return s.nt, nil
}

// Set stores a numeric array under the given key. The array length must
// equal the owner's element count for the key's prefix; wrong lengths fail
// with ErrShapeMismatch and are never truncated or padded. Overwriting is
// allowed.
func (s *PropertyStore) Set(key string, values []float64) error {
	want, err := s.countFor(key)
	if err != nil {
		return err
	}
	if len(values) != want {
		return ShapeMismatchError("Set", s.owner, key, want, len(values))
	}
	s.data[key] = values
	return nil
}

// Get returns the numeric array stored under key
func (s *PropertyStore) Get(key string) ([]float64, error) {
	values, ok := s.data[key]
	if !ok {
		return nil, KeyNotFoundError("Get", s.owner, key)
	}
	return values, nil
}

// SetLabel stores a boolean membership mask under the given key, subject to
// the same shape rule as Set
func (s *PropertyStore) SetLabel(key string, mask []bool) error {
	want, err := s.countFor(key)
	if err != nil {
		return err
	}
	if len(mask) != want {
		return ShapeMismatchError("SetLabel", s.owner, key, want, len(mask))
	}
	s.labels[key] = mask
	return nil
}

// GetLabel returns the boolean mask stored under key
func (s *PropertyStore) GetLabel(key string) ([]bool, error) {
	mask, ok := s.labels[key]
	if !ok {
		return nil, KeyNotFoundError("GetLabel", s.owner, key)
	}
	return mask, nil
}

// Has reports whether a numeric or label entry exists for key
func (s *PropertyStore) Has(key string) bool {
	if _, ok := s.data[key]; ok {
		return true
	}
	_, ok := s.labels[key]
	return ok
}

// Delete removes the entry for key. Dependent models are not re-run
// automatically; that is what Regenerate is for.
func (s *PropertyStore) Delete(key string) {
	delete(s.data, key)
	delete(s.labels, key)
}

// Keys returns the sorted numeric property keys
func (s *PropertyStore) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LabelKeys returns the sorted label keys
func (s *PropertyStore) LabelKeys() []string {
	keys := make([]string, 0, len(s.labels))
	for k := range s.labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NumPores returns the pore count the store validates against
func (s *PropertyStore) NumPores() int { return s.np }

// NumThroats returns the throat count the store validates against
func (s *PropertyStore) NumThroats() int { return s.nt }
