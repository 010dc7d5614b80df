package network

import (
	"errors"
	"testing"
)

func TestIncidenceMatrix_Chain(t *testing.T) {
	n := chainNetwork(t)

	rows, cols := n.IncidenceMatrix()
	if len(rows) != 2*n.NumThroats() || len(cols) != len(rows) {
		t.Fatalf("expected %d incidence entries, got %d", 2*n.NumThroats(), len(rows))
	}

	// Each throat contributes its two endpoints
	counts := make(map[int]int)
	for i := range rows {
		if rows[i] != n.Conns()[cols[i]][0] && rows[i] != n.Conns()[cols[i]][1] {
			t.Errorf("entry (%d,%d) is not a touching pair", rows[i], cols[i])
		}
		counts[cols[i]]++
	}
	for tIdx, c := range counts {
		if c != 2 {
			t.Errorf("throat %d appears %d times, want 2", tIdx, c)
		}
	}
}

func TestIncidenceMatrix_CachedUntilMutation(t *testing.T) {
	n := chainNetwork(t)

	rebuilds := 0
	n.SetIncidenceRebuildHook(func() { rebuilds++ })

	n.IncidenceMatrix()
	n.IncidenceMatrix()
	if rebuilds != 1 {
		t.Errorf("expected a single build for repeated queries, got %d", rebuilds)
	}

	if err := n.AddThroats([][2]int{{0, 4}}); err != nil {
		t.Fatalf("AddThroats failed: %v", err)
	}
	rows, _ := n.IncidenceMatrix()
	if rebuilds != 2 {
		t.Errorf("mutation should invalidate the cache, rebuilds=%d", rebuilds)
	}
	if len(rows) != 2*n.NumThroats() {
		t.Errorf("stale incidence matrix after mutation")
	}
}

func TestConnectedPores(t *testing.T) {
	n := chainNetwork(t)

	pairs, err := n.ConnectedPores([]int{0, 2})
	if err != nil {
		t.Fatalf("ConnectedPores failed: %v", err)
	}
	if pairs[0] != [2]int{0, 1} || pairs[1] != [2]int{2, 3} {
		t.Errorf("unexpected pairs: %v", pairs)
	}

	_, err = n.ConnectedPores([]int{9})
	if !errors.Is(err, ErrIndexRange) {
		t.Errorf("expected ErrIndexRange, got %v", err)
	}
}

func TestNeighborThroats(t *testing.T) {
	n := chainNetwork(t)

	throats, err := n.NeighborThroats([]int{2})
	if err != nil {
		t.Fatalf("NeighborThroats failed: %v", err)
	}
	if len(throats) != 2 || throats[0] != 1 || throats[1] != 2 {
		t.Errorf("expected [1 2], got %v", throats)
	}

	empty, err := n.NeighborThroats(nil)
	if err != nil {
		t.Fatalf("NeighborThroats on empty set failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty pore set should yield empty throats, got %v", empty)
	}
}

func TestNeighborPores(t *testing.T) {
	n := chainNetwork(t)

	pores, err := n.NeighborPores([]int{1, 2})
	if err != nil {
		t.Fatalf("NeighborPores failed: %v", err)
	}
	if len(pores) != 2 || pores[0] != 0 || pores[1] != 3 {
		t.Errorf("expected [0 3], got %v", pores)
	}
}
