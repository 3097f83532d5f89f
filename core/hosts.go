package core

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/nettrace-lab/ppmtrace/state"
	"github.com/nettrace-lab/ppmtrace/topo"
	"github.com/samber/lo"
)

// Hosts is the per-trial partition of leaf nodes into attackers and
// normal users.
type Hosts struct {
	Attackers   []state.RouterID
	NormalUsers []state.RouterID
}

// ChooseHosts draws the attacker and normal-user leaves for one trial.
// Attackers are topologically separated by placing at most one per
// branch: the branch order is shuffled, then one random leaf is taken
// from each of the first numAttackers branches. Normal users come from
// the remaining leaves. Infeasible requests are configuration errors.
func ChooseHosts(t *topo.Topology, numAttackers, numNormal int, seed uint64) (Hosts, error) {
	rng := newRand(seed)

	byBranch := lo.GroupBy(t.Leaves(), func(leaf state.RouterID) state.RouterID {
		br, _ := t.BranchRoot(leaf)
		return br
	})

	branches := lo.Keys(byBranch)
	if len(branches) < numAttackers {
		return Hosts{}, fmt.Errorf("requested %d attackers but topology has only %d branches",
			numAttackers, len(branches))
	}
	slices.SortFunc(branches, func(a, b state.RouterID) int { return cmp.Compare(a, b) })
	rng.Shuffle(len(branches), func(i, j int) {
		branches[i], branches[j] = branches[j], branches[i]
	})

	attackers := make([]state.RouterID, 0, numAttackers)
	for _, br := range branches[:numAttackers] {
		leaves := byBranch[br]
		attackers = append(attackers, leaves[rng.IntN(len(leaves))])
	}

	remaining := lo.Without(t.Leaves(), attackers...)
	if len(remaining) < numNormal {
		return Hosts{}, fmt.Errorf("requested %d normal users but only %d non-attacker leaves remain",
			numNormal, len(remaining))
	}
	rng.Shuffle(len(remaining), func(i, j int) {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	})

	return Hosts{
		Attackers:   attackers,
		NormalUsers: remaining[:numNormal],
	}, nil
}
