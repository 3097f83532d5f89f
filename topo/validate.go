package topo

import (
	"fmt"
	"slices"

	"github.com/nettrace-lab/ppmtrace/state"
)

// Validate checks the structural limits the simulator imposes on a
// topology. Tree-shape invariants are already enforced by New; this
// checks the configured size bounds. Failing any of them is a fatal
// configuration error.
func Validate(t *Topology, limits state.TopologyLimits) error {
	routers := t.RouterCount()
	if routers < limits.MinRouters || routers > limits.MaxRouters {
		return fmt.Errorf("router count must be %d-%d excluding victim, found %d",
			limits.MinRouters, limits.MaxRouters, routers)
	}
	branches := len(t.Branches())
	if !slices.Contains(limits.BranchChoices, branches) {
		return fmt.Errorf("branch count must be one of %v, found %d", limits.BranchChoices, branches)
	}
	if d := t.MaxDepth(); d > limits.MaxHops {
		return fmt.Errorf("max hop depth must be <= %d, found %d", limits.MaxHops, d)
	}
	return nil
}
