package core

import (
	"slices"

	"github.com/nettrace-lab/ppmtrace/ppm"
	"github.com/nettrace-lab/ppmtrace/state"
	"github.com/nettrace-lab/ppmtrace/topo"
)

// TrialResult is the per-trial outcome handed to the aggregator. A
// scheme that never matched ground truth within the tick budget simply
// reports Converged false; that is a measured outcome, not an error.
type TrialResult struct {
	NodeConverged bool
	EdgeConverged bool
	NodeTick      int // 1-based tick of the first correct node guess, 0 if never
	EdgeTick      int
	Attackers     []state.RouterID // ground truth drawn for this trial
}

// RunTrial drives one seeded trial tick by tick. Each tick, every normal
// user sends one packet through each sampler (the victim cannot tell
// them apart, but only attacker-side marks accumulate in the observation
// buffers), every attacker sends X packets through each sampler, and any
// scheme that has not converged yet re-runs its reconstruction against
// the accumulated observations. A scheme latches at the first tick its
// guess set equals the ground-truth attacker set exactly; the trial ends
// when both schemes have latched or the budget runs out.
func RunTrial(env *state.Env, tree *topo.Topology, cfg state.TrialCfg, seed uint64) (TrialResult, error) {
	if err := state.TrialConfigValidator(&cfg); err != nil {
		return TrialResult{}, err
	}

	rng := newRand(seed)
	hosts, err := ChooseHosts(tree, cfg.Attackers, cfg.NormalUsers, rng.Uint64())
	if err != nil {
		return TrialResult{}, err
	}

	nodeSampler := ppm.NewNodeSampler(cfg.P, rng.Uint64())
	edgeSampler := ppm.NewEdgeSampler(cfg.P, rng.Uint64())

	truth := make(map[state.RouterID]bool, len(hosts.Attackers))
	for _, a := range hosts.Attackers {
		truth[a] = true
	}

	var nodeObs []state.RouterID
	var edgeObs []ppm.EdgeMark

	res := TrialResult{Attackers: slices.Clone(hosts.Attackers)}
	for tick := 1; tick <= cfg.MaxTicks; tick++ {
		for _, user := range hosts.NormalUsers {
			for i := 0; i < state.NormalRate; i++ {
				nodeSampler.Forward(tree, user)
				edgeSampler.Forward(tree, user)
			}
		}
		for _, attacker := range hosts.Attackers {
			for i := 0; i < cfg.X*state.NormalRate; i++ {
				if pkt := nodeSampler.Forward(tree, attacker); pkt.Marked {
					nodeObs = append(nodeObs, pkt.Node)
				}
				edgeObs = append(edgeObs, edgeSampler.Forward(tree, attacker))
			}
		}

		if !res.NodeConverged && nodeGuessMatches(tree, nodeObs, cfg.Attackers, truth) {
			res.NodeConverged = true
			res.NodeTick = tick
			env.Log.Debug("node scheme converged", "tick", tick, "attackers", hosts.Attackers)
		}
		if !res.EdgeConverged && edgeGuessMatches(edgeObs, &cfg, truth) {
			res.EdgeConverged = true
			res.EdgeTick = tick
			env.Log.Debug("edge scheme converged", "tick", tick, "attackers", hosts.Attackers)
		}
		if res.NodeConverged && res.EdgeConverged {
			break
		}
	}
	return res, nil
}

func nodeGuessMatches(tree *topo.Topology, obs []state.RouterID, numAttackers int, truth map[state.RouterID]bool) bool {
	if numAttackers == 1 {
		guess, ok := ppm.GuessAttackerLeaf(tree, ppm.RankByFrequency(obs), obs)
		return ok && truth[guess]
	}
	return sameSet(ppm.GuessAttackers(tree, obs, numAttackers), truth)
}

func edgeGuessMatches(obs []ppm.EdgeMark, cfg *state.TrialCfg, truth map[state.RouterID]bool) bool {
	buckets := ppm.BucketByDistance(obs, state.Victim)
	if cfg.EdgeStrategy == state.EdgeStrategyChain {
		guess, ok := ppm.GuessAttackerFromChain(buckets, state.Victim)
		return ok && truth[guess]
	}
	g := ppm.BuildGraph(buckets, state.Victim)
	g.Prune()
	if cfg.Attackers == 1 {
		guess, ok := g.FarthestSource()
		return ok && truth[guess]
	}
	return sameSet(g.Sources(), truth)
}

// sameSet reports whether guesses equals the ground-truth set exactly,
// with no omissions and no false positives.
func sameSet(guesses []state.RouterID, truth map[state.RouterID]bool) bool {
	if len(guesses) != len(truth) {
		return false
	}
	for _, g := range guesses {
		if !truth[g] {
			return false
		}
	}
	return true
}
