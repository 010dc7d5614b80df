package network

import "fmt"

// NewCubic builds a rectangular lattice network with the given shape
// [nx, ny, nz] and lattice spacing. Pores sit at lattice points; throats
// connect nearest neighbors along each axis. Face labels ("left", "right",
// "front", "back", "bottom", "top"), plus "surface" and "internal", are
// registered on the pores.
func NewCubic(shape [3]int, spacing float64) (*Network, error) {
	nx, ny, nz := shape[0], shape[1], shape[2]
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, &TopologyError{
			Op:     "NewCubic",
			Entity: "pore",
			Cause:  fmt.Errorf("%w: shape [%d %d %d]", ErrIndexRange, nx, ny, nz),
		}
	}

	np := nx * ny * nz
	idx := func(ix, iy, iz int) int { return ix*ny*nz + iy*nz + iz }

	conns := make([][2]int, 0, 3*np)
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			for iz := 0; iz < nz; iz++ {
				p := idx(ix, iy, iz)
				if ix+1 < nx {
					conns = append(conns, [2]int{p, idx(ix+1, iy, iz)})
				}
				if iy+1 < ny {
					conns = append(conns, [2]int{p, idx(ix, iy+1, iz)})
				}
				if iz+1 < nz {
					conns = append(conns, [2]int{p, idx(ix, iy, iz+1)})
				}
			}
		}
	}

	n, err := NewNetwork(np, conns)
	if err != nil {
		return nil, err
	}

	coords := make([][3]float64, np)
	var left, right, front, back, bottom, top, surface, internal []int
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			for iz := 0; iz < nz; iz++ {
				p := idx(ix, iy, iz)
				coords[p] = [3]float64{
					(float64(ix) + 0.5) * spacing,
					(float64(iy) + 0.5) * spacing,
					(float64(iz) + 0.5) * spacing,
				}
				onFace := false
				if ix == 0 {
					left = append(left, p)
					onFace = true
				}
				if ix == nx-1 {
					right = append(right, p)
					onFace = true
				}
				if iy == 0 {
					front = append(front, p)
					onFace = true
				}
				if iy == ny-1 {
					back = append(back, p)
					onFace = true
				}
				if iz == 0 {
					bottom = append(bottom, p)
					onFace = true
				}
				if iz == nz-1 {
					top = append(top, p)
					onFace = true
				}
				if onFace {
					surface = append(surface, p)
				} else {
					internal = append(internal, p)
				}
			}
		}
	}
	if err := n.SetCoords(coords); err != nil {
		return nil, err
	}

	faces := map[string][]int{
		"left":     left,
		"right":    right,
		"front":    front,
		"back":     back,
		"bottom":   bottom,
		"top":      top,
		"surface":  surface,
		"internal": internal,
	}
	for name, indices := range faces {
		if err := n.SetPoreLabel(name, indices); err != nil {
			return nil, err
		}
	}

	return n, nil
}
