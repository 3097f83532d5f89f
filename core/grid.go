package core

import (
	"cmp"
	"runtime"
	"slices"
	"time"

	"github.com/nettrace-lab/ppmtrace/perf"
	"github.com/nettrace-lab/ppmtrace/state"
	"github.com/nettrace-lab/ppmtrace/topo"
	"github.com/samber/lo"
	cartesian "github.com/schwarmco/go-cartesian-product"
	"golang.org/x/sync/errgroup"
)

// Stats aggregates the trials of one (x, p) grid cell.
type Stats struct {
	X      int
	P      float64
	Trials int

	NodeAcc float64 // fraction of trials where the node scheme found the attackers
	EdgeAcc float64

	NodeConverged int // trial counts behind the accuracy fractions
	EdgeConverged int

	NodeMeanTick float64 // mean convergence tick over converged trials, 0 when none
	EdgeMeanTick float64
}

// RunGrid sweeps the configured attack-rate multipliers and marking
// probabilities, running the configured number of trials per cell.
// Trials are independent, so they fan out over an errgroup; every trial
// seed derives deterministically from the parent seed and the cell, so
// the result does not depend on worker scheduling.
func RunGrid(env *state.Env, tree *topo.Topology) ([]Stats, error) {
	cfg := env.ExperimentCfg

	type gridCell struct {
		x int
		p float64
	}
	var cells []gridCell
	for combo := range cartesian.Iter(lo.ToAnySlice(cfg.XValues), lo.ToAnySlice(cfg.PValues)) {
		cells = append(cells, gridCell{x: combo[0].(int), p: combo[1].(float64)})
	}
	slices.SortFunc(cells, func(a, b gridCell) int {
		if c := cmp.Compare(a.x, b.x); c != 0 {
			return c
		}
		return cmp.Compare(a.p, b.p)
	})

	results := make([][]TrialResult, len(cells))
	for i := range results {
		results[i] = make([]TrialResult, cfg.Trials)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	eg, _ := errgroup.WithContext(env.Context)
	eg.SetLimit(workers)
	for ci, cell := range cells {
		for ti := 0; ti < cfg.Trials; ti++ {
			eg.Go(func() error {
				start := time.Now()
				res, err := RunTrial(env, tree, cfg.TrialCfgAt(cell.x, cell.p), trialSeed(cfg.Seed, cell.x, cell.p, ti))
				if err != nil {
					return err
				}
				perf.TrialLatency.Add(float64(time.Since(start).Microseconds()))
				perf.TrialsPerSecond.Add(1)
				results[ci][ti] = res
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := make([]Stats, 0, len(cells))
	for ci, cell := range cells {
		stats := aggregate(cell.x, cell.p, results[ci])
		env.Log.Debug("grid cell complete",
			"x", cell.x, "p", cell.p,
			"node_acc", stats.NodeAcc, "edge_acc", stats.EdgeAcc)
		out = append(out, stats)
	}
	return out, nil
}

func aggregate(x int, p float64, trials []TrialResult) Stats {
	s := Stats{X: x, P: p, Trials: len(trials)}
	nodeTicks, edgeTicks := 0, 0
	for _, t := range trials {
		if t.NodeConverged {
			s.NodeConverged++
			nodeTicks += t.NodeTick
		}
		if t.EdgeConverged {
			s.EdgeConverged++
			edgeTicks += t.EdgeTick
		}
	}
	s.NodeAcc = float64(s.NodeConverged) / float64(len(trials))
	s.EdgeAcc = float64(s.EdgeConverged) / float64(len(trials))
	if s.NodeConverged > 0 {
		s.NodeMeanTick = float64(nodeTicks) / float64(s.NodeConverged)
	}
	if s.EdgeConverged > 0 {
		s.EdgeMeanTick = float64(edgeTicks) / float64(s.EdgeConverged)
	}
	return s
}
