package network

import (
	"fmt"
	"sort"
)

// Network is the root topology object. It owns the canonical pore and throat
// arrays, the throat connectivity table and the label tables. Every derived
// structure (incidence matrix, cached index sets) carries the network's
// version stamp and is rebuilt after a topology mutation.
type Network struct {
	np int
	nt int

	// conns[t] holds the two endpoint pores of throat t
	conns  [][2]int
	coords [][3]float64

	poreLabels   map[string][]bool
	throatLabels map[string][]bool

	version uint64

	inc *incidence

	// invoked every time the incidence matrix is rebuilt
	onIncidenceRebuild func()
}

// NewNetwork creates a network with np pores and the given connectivity table.
// Every throat endpoint must be a valid pore index.
func NewNetwork(np int, conns [][2]int) (*Network, error) {
	n := &Network{
		np:           np,
		conns:        make([][2]int, 0, len(conns)),
		coords:       make([][3]float64, np),
		poreLabels:   make(map[string][]bool),
		throatLabels: make(map[string][]bool),
	}
	for _, c := range conns {
		if c[0] < 0 || c[0] >= np || c[1] < 0 || c[1] >= np {
			return nil, &TopologyError{
				Op:     "NewNetwork",
				Entity: "throat",
				Cause:  fmt.Errorf("%w: (%d,%d) with %d pores", ErrInvalidThroat, c[0], c[1], np),
			}
		}
		n.conns = append(n.conns, c)
	}
	n.nt = len(n.conns)
	return n, nil
}

// NumPores returns the current pore count
func (n *Network) NumPores() int { return n.np }

// NumThroats returns the current throat count
func (n *Network) NumThroats() int { return n.nt }

// Version returns the topology version counter. It increments on every
// mutation of the element arrays or counts.
func (n *Network) Version() uint64 { return n.version }

// Conns returns the Nt×2 connectivity table. Callers must not mutate it.
func (n *Network) Conns() [][2]int { return n.conns }

// Coords returns the Np×3 pore coordinate table. Callers must not mutate it.
func (n *Network) Coords() [][3]float64 { return n.coords }

// SetCoords replaces the pore coordinate table
func (n *Network) SetCoords(coords [][3]float64) error {
	if len(coords) != n.np {
		return LengthMismatchError("SetCoords", "pore", n.np, len(coords))
	}
	n.coords = coords
	return nil
}

// SetIncidenceRebuildHook registers a callback fired whenever the cached
// incidence matrix is rebuilt
func (n *Network) SetIncidenceRebuildHook(fn func()) {
	n.onIncidenceRebuild = fn
}

func (n *Network) bumpVersion() {
	n.version++
	n.inc = nil
}

// SetPoreLabel registers (or extends) a boolean pore label covering the given
// global indices
func (n *Network) SetPoreLabel(name string, indices []int) error {
	return n.setLabel("SetPoreLabel", "pore", n.poreLabels, n.np, name, indices)
}

// SetThroatLabel registers (or extends) a boolean throat label covering the
// given global indices
func (n *Network) SetThroatLabel(name string, indices []int) error {
	return n.setLabel("SetThroatLabel", "throat", n.throatLabels, n.nt, name, indices)
}

func (n *Network) setLabel(op, entity string, table map[string][]bool, count int, name string, indices []int) error {
	mask, ok := table[name]
	if !ok {
		mask = make([]bool, count)
	}
	for _, i := range indices {
		if i < 0 || i >= count {
			return &TopologyError{
				Op:     op,
				Entity: entity,
				Label:  name,
				Cause:  fmt.Errorf("%w: index %d with %d elements", ErrIndexRange, i, count),
			}
		}
		mask[i] = true
	}
	table[name] = mask
	return nil
}

// ClearPoreLabel removes a pore label entirely
func (n *Network) ClearPoreLabel(name string) {
	delete(n.poreLabels, name)
}

// ClearThroatLabel removes a throat label entirely
func (n *Network) ClearThroatLabel(name string) {
	delete(n.throatLabels, name)
}

// PoreLabels returns the sorted names of all registered pore labels
func (n *Network) PoreLabels() []string {
	return sortedKeys(n.poreLabels)
}

// ThroatLabels returns the sorted names of all registered throat labels
func (n *Network) ThroatLabels() []string {
	return sortedKeys(n.throatLabels)
}

func sortedKeys(m map[string][]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AddPores appends n new unlabeled pores. Existing label masks are extended
// with false entries.
func (n *Network) AddPores(count int) error {
	if count < 0 {
		return &TopologyError{Op: "AddPores", Entity: "pore", Cause: fmt.Errorf("%w: negative count %d", ErrIndexRange, count)}
	}
	n.np += count
	n.coords = append(n.coords, make([][3]float64, count)...)
	for name, mask := range n.poreLabels {
		n.poreLabels[name] = append(mask, make([]bool, count)...)
	}
	n.bumpVersion()
	return nil
}

// AddThroats appends new throats with the given endpoint pairs. Existing
// label masks are extended with false entries.
func (n *Network) AddThroats(conns [][2]int) error {
	for _, c := range conns {
		if c[0] < 0 || c[0] >= n.np || c[1] < 0 || c[1] >= n.np {
			return &TopologyError{
				Op:     "AddThroats",
				Entity: "throat",
				Cause:  fmt.Errorf("%w: (%d,%d) with %d pores", ErrInvalidThroat, c[0], c[1], n.np),
			}
		}
	}
	n.conns = append(n.conns, conns...)
	n.nt = len(n.conns)
	for name, mask := range n.throatLabels {
		n.throatLabels[name] = append(mask, make([]bool, len(conns))...)
	}
	n.bumpVersion()
	return nil
}

// TrimThroats removes the given throats. Remaining throats are renumbered to
// stay contiguous; pore numbering is unaffected.
func (n *Network) TrimThroats(throats []int) error {
	drop := make([]bool, n.nt)
	for _, t := range throats {
		if t < 0 || t >= n.nt {
			return &TopologyError{Op: "TrimThroats", Entity: "throat", Cause: fmt.Errorf("%w: index %d with %d throats", ErrIndexRange, t, n.nt)}
		}
		drop[t] = true
	}

	kept := make([][2]int, 0, n.nt)
	keepMask := make([]bool, n.nt)
	for t := 0; t < n.nt; t++ {
		if !drop[t] {
			kept = append(kept, n.conns[t])
			keepMask[t] = true
		}
	}
	n.conns = kept
	n.nt = len(kept)
	for name, mask := range n.throatLabels {
		n.throatLabels[name] = filterMask(mask, keepMask)
	}
	n.bumpVersion()
	return nil
}

// TrimPores removes the given pores along with every throat touching them.
// Remaining pores and throats are renumbered to stay contiguous.
func (n *Network) TrimPores(pores []int) error {
	dropPore := make([]bool, n.np)
	for _, p := range pores {
		if p < 0 || p >= n.np {
			return &TopologyError{Op: "TrimPores", Entity: "pore", Cause: fmt.Errorf("%w: index %d with %d pores", ErrIndexRange, p, n.np)}
		}
		dropPore[p] = true
	}

	// Old pore index -> new pore index
	remap := make([]int, n.np)
	keepPore := make([]bool, n.np)
	next := 0
	for p := 0; p < n.np; p++ {
		if dropPore[p] {
			remap[p] = -1
			continue
		}
		remap[p] = next
		keepPore[p] = true
		next++
	}

	keptConns := make([][2]int, 0, n.nt)
	keepThroat := make([]bool, n.nt)
	for t, c := range n.conns {
		if dropPore[c[0]] || dropPore[c[1]] {
			continue
		}
		keptConns = append(keptConns, [2]int{remap[c[0]], remap[c[1]]})
		keepThroat[t] = true
	}

	keptCoords := make([][3]float64, 0, next)
	for p := 0; p < n.np; p++ {
		if keepPore[p] {
			keptCoords = append(keptCoords, n.coords[p])
		}
	}

	n.conns = keptConns
	n.coords = keptCoords
	n.np = next
	n.nt = len(keptConns)
	for name, mask := range n.poreLabels {
		n.poreLabels[name] = filterMask(mask, keepPore)
	}
	for name, mask := range n.throatLabels {
		n.throatLabels[name] = filterMask(mask, keepThroat)
	}
	n.bumpVersion()
	return nil
}

func filterMask(mask, keep []bool) []bool {
	out := make([]bool, 0, len(mask))
	for i, k := range keep {
		if k {
			out = append(out, mask[i])
		}
	}
	return out
}
