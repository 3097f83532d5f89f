package ppm

import (
	"cmp"
	"slices"

	"github.com/nettrace-lab/ppmtrace/state"
	"github.com/nettrace-lab/ppmtrace/topo"
	"github.com/samber/lo"
)

// RankByFrequency orders the distinct observed routers from most to
// least frequent. Routers close to the victim overwrite more often and
// float to the front; the tail of the ranking is the attacker-side edge
// of the observed region. Ties break toward the smaller id so repeated
// reconstructions of the same observations agree.
func RankByFrequency(obs []state.RouterID) []state.RouterID {
	counts := lo.CountValues(obs)
	ranked := lo.Keys(counts)
	slices.SortFunc(ranked, func(a, b state.RouterID) int {
		if c := counts[b] - counts[a]; c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return ranked
}

// GuessAttackerLeaf attributes the attack to a leaf below the
// least-frequent observed router. A leaf that itself appeared among the
// observations is direct evidence and is preferred (smallest such id);
// otherwise the smallest-id leaf of the subtree is the documented
// tie-break. Returns false while there are no observations.
func GuessAttackerLeaf(t *topo.Topology, ranked []state.RouterID, obs []state.RouterID) (state.RouterID, bool) {
	if len(ranked) == 0 {
		return 0, false
	}
	farthest := ranked[len(ranked)-1]
	leaves := t.SubtreeLeaves(farthest)
	if len(leaves) == 0 {
		return farthest, true
	}
	observed := lo.SliceToMap(obs, func(n state.RouterID) (state.RouterID, bool) { return n, true })
	for _, leaf := range leaves {
		if observed[leaf] {
			return leaf, true
		}
	}
	return leaves[0], true
}

// GuessAttackers is the multi-attacker heuristic: observations are
// partitioned by the branch they fall under, branches are ranked by
// observation volume (more marks means a stronger signal), and the
// single-attacker attribution runs independently per branch until
// maxAttackers distinct guesses are collected. It can both miss an
// under-sampled attacker and hallucinate one from a noisy branch.
func GuessAttackers(t *topo.Topology, obs []state.RouterID, maxAttackers int) []state.RouterID {
	byBranch := make(map[state.RouterID][]state.RouterID)
	for _, n := range obs {
		if br, ok := t.BranchRoot(n); ok {
			byBranch[br] = append(byBranch[br], n)
		}
	}

	branches := lo.Keys(byBranch)
	slices.SortFunc(branches, func(a, b state.RouterID) int {
		if c := len(byBranch[b]) - len(byBranch[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	var guesses []state.RouterID
	for _, br := range branches {
		branchObs := byBranch[br]
		guess, ok := GuessAttackerLeaf(t, RankByFrequency(branchObs), branchObs)
		if ok && !slices.Contains(guesses, guess) {
			guesses = append(guesses, guess)
		}
		if len(guesses) >= maxAttackers {
			break
		}
	}
	return guesses
}
