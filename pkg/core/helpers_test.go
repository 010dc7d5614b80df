package core

import (
	"testing"

	"github.com/NaiveSK/OpenPNM/pkg/logging"
	"github.com/NaiveSK/OpenPNM/pkg/network"
)

// chainProject builds a project around the 5-pore, 4-throat chain 0-1-2-3-4
// with a quiet logger
func chainProject(t *testing.T) *Project {
	t.Helper()
	net, err := network.NewNetwork(5, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}})
	if err != nil {
		t.Fatalf("failed to create network: %v", err)
	}
	return NewProjectWithConfig(net, ProjectConfig{Logger: logging.Nop()})
}

// constantModel returns a ModelFunc producing the given value over the
// target's pores or throats
func constantModel(kind string, value float64) ModelFunc {
	return func(target Target, params Params) ([]float64, error) {
		count := target.NumPores()
		if kind == "throat" {
			count = target.NumThroats()
		}
		out := make([]float64, count)
		for i := range out {
			out[i] = value
		}
		return out, nil
	}
}
