package network

import (
	"fmt"
	"sort"
)

// incidence is the cached pore-throat touching relation in COO form. For
// every throat t with endpoints (p1,p2) it carries the rows (p1,t) and
// (p2,t). The version stamp ties the cache to the topology that built it.
type incidence struct {
	rows    []int
	cols    []int
	version uint64
}

// IncidenceMatrix returns the pore-throat incidence relation as parallel
// row (pore index) and col (throat index) slices. The matrix is built lazily
// and cached until the next topology mutation. Callers must not mutate the
// returned slices.
func (n *Network) IncidenceMatrix() (rows, cols []int) {
	if n.inc != nil && n.inc.version == n.version {
		return n.inc.rows, n.inc.cols
	}

	rows = make([]int, 0, 2*n.nt)
	cols = make([]int, 0, 2*n.nt)
	for t, c := range n.conns {
		rows = append(rows, c[0], c[1])
		cols = append(cols, t, t)
	}
	n.inc = &incidence{rows: rows, cols: cols, version: n.version}
	if n.onIncidenceRebuild != nil {
		n.onIncidenceRebuild()
	}
	return rows, cols
}

// ConnectedPores returns the two endpoint pores of each given throat as an
// Nx2 table, in the order the throats were given.
func (n *Network) ConnectedPores(throats []int) ([][2]int, error) {
	out := make([][2]int, 0, len(throats))
	for _, t := range throats {
		if t < 0 || t >= n.nt {
			return nil, &TopologyError{
				Op:     "ConnectedPores",
				Entity: "throat",
				Cause:  fmt.Errorf("%w: index %d with %d throats", ErrIndexRange, t, n.nt),
			}
		}
		out = append(out, n.conns[t])
	}
	return out, nil
}

// NeighborThroats returns the sorted unique throats incident to any of the
// given pores. An empty pore set yields an empty result, not an error.
func (n *Network) NeighborThroats(pores []int) ([]int, error) {
	member := make([]bool, n.np)
	for _, p := range pores {
		if p < 0 || p >= n.np {
			return nil, &TopologyError{
				Op:     "NeighborThroats",
				Entity: "pore",
				Cause:  fmt.Errorf("%w: index %d with %d pores", ErrIndexRange, p, n.np),
			}
		}
		member[p] = true
	}

	seen := make(map[int]struct{})
	rows, cols := n.IncidenceMatrix()
	for i, p := range rows {
		if member[p] {
			seen[cols[i]] = struct{}{}
		}
	}

	out := make([]int, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Ints(out)
	return out, nil
}

// NeighborPores returns the sorted unique pores sharing a throat with any of
// the given pores, excluding the input pores themselves.
func (n *Network) NeighborPores(pores []int) ([]int, error) {
	member := make([]bool, n.np)
	for _, p := range pores {
		if p < 0 || p >= n.np {
			return nil, &TopologyError{
				Op:     "NeighborPores",
				Entity: "pore",
				Cause:  fmt.Errorf("%w: index %d with %d pores", ErrIndexRange, p, n.np),
			}
		}
		member[p] = true
	}

	seen := make(map[int]struct{})
	for _, c := range n.conns {
		if member[c[0]] && !member[c[1]] {
			seen[c[1]] = struct{}{}
		}
		if member[c[1]] && !member[c[0]] {
			seen[c[0]] = struct{}{}
		}
	}

	out := make([]int, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Ints(out)
	return out, nil
}
