package network

// Element indexing. Label strings and boolean masks both normalize to sorted
// global index slices before any downstream logic sees them.

// Label specials accepted wherever a label name is
const (
	LabelAll  = "all"
	LabelNone = "none"
)

// Pores resolves a pore label into the sorted ascending global indices where
// the label is set. The specials "all" and "none" are always available.
func (n *Network) Pores(label string) ([]int, error) {
	return resolveLabel("Pores", "pore", n.poreLabels, n.np, label)
}

// Throats resolves a throat label into the sorted ascending global indices
// where the label is set. The specials "all" and "none" are always available.
func (n *Network) Throats(label string) ([]int, error) {
	return resolveLabel("Throats", "throat", n.throatLabels, n.nt, label)
}

// PoresFromMask converts a boolean pore mask into sorted global indices. The
// mask length must equal the current pore count.
func (n *Network) PoresFromMask(mask []bool) ([]int, error) {
	if len(mask) != n.np {
		return nil, LengthMismatchError("PoresFromMask", "pore", n.np, len(mask))
	}
	return maskToIndices(mask), nil
}

// ThroatsFromMask converts a boolean throat mask into sorted global indices.
// The mask length must equal the current throat count.
func (n *Network) ThroatsFromMask(mask []bool) ([]int, error) {
	if len(mask) != n.nt {
		return nil, LengthMismatchError("ThroatsFromMask", "throat", n.nt, len(mask))
	}
	return maskToIndices(mask), nil
}

// PoreLabelMask returns the boolean membership mask of a registered pore label
func (n *Network) PoreLabelMask(label string) ([]bool, error) {
	return labelMask("PoreLabelMask", "pore", n.poreLabels, n.np, label)
}

// ThroatLabelMask returns the boolean membership mask of a registered throat label
func (n *Network) ThroatLabelMask(label string) ([]bool, error) {
	return labelMask("ThroatLabelMask", "throat", n.throatLabels, n.nt, label)
}

func resolveLabel(op, entity string, table map[string][]bool, count int, label string) ([]int, error) {
	switch label {
	case LabelAll:
		out := make([]int, count)
		for i := range out {
			out[i] = i
		}
		return out, nil
	case LabelNone:
		return []int{}, nil
	}
	mask, ok := table[label]
	if !ok {
		return nil, UnknownLabelError(op, entity, label)
	}
	return maskToIndices(mask), nil
}

func labelMask(op, entity string, table map[string][]bool, count int, label string) ([]bool, error) {
	switch label {
	case LabelAll:
		mask := make([]bool, count)
		for i := range mask {
			mask[i] = true
		}
		return mask, nil
	case LabelNone:
		return make([]bool, count), nil
	}
	mask, ok := table[label]
	if !ok {
		return nil, UnknownLabelError(op, entity, label)
	}
	out := make([]bool, len(mask))
	copy(out, mask)
	return out, nil
}

// maskToIndices is the single normalization point from boolean masks to
// ordered index slices. Iteration order guarantees ascending output.
func maskToIndices(mask []bool) []int {
	out := make([]int, 0)
	for i, set := range mask {
		if set {
			out = append(out, i)
		}
	}
	return out
}
