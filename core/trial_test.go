package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nettrace-lab/ppmtrace/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Regression threshold from the original study: with p = 0.5 and an
// attacker flooding at 100x, both schemes must locate a single attacker
// within 500 ticks in at least 95 of 100 seeded trials.
func TestRunTrial_SingleAttackerScenario(t *testing.T) {
	tree := testTopology(t)
	env := testEnv(t, state.ExperimentCfg{})
	cfg := state.TrialCfg{
		P:            0.5,
		X:            100,
		Attackers:    1,
		NormalUsers:  1,
		MaxTicks:     500,
		EdgeStrategy: state.EdgeStrategyGraph,
	}

	nodeOk, edgeOk := 0, 0
	for seed := uint64(0); seed < 100; seed++ {
		res, err := RunTrial(env, tree, cfg, seed)
		require.NoError(t, err)
		if res.NodeConverged {
			nodeOk++
			assert.LessOrEqual(t, res.NodeTick, cfg.MaxTicks)
		}
		if res.EdgeConverged {
			edgeOk++
			assert.LessOrEqual(t, res.EdgeTick, cfg.MaxTicks)
		}
	}
	assert.GreaterOrEqual(t, nodeOk, 95, "node scheme accuracy")
	assert.GreaterOrEqual(t, edgeOk, 95, "edge scheme accuracy")
}

func TestRunTrial_ChainStrategy(t *testing.T) {
	tree := testTopology(t)
	env := testEnv(t, state.ExperimentCfg{})
	cfg := state.TrialCfg{
		P:            0.5,
		X:            100,
		Attackers:    1,
		NormalUsers:  1,
		MaxTicks:     500,
		EdgeStrategy: state.EdgeStrategyChain,
	}

	edgeOk := 0
	for seed := uint64(0); seed < 20; seed++ {
		res, err := RunTrial(env, tree, cfg, seed)
		require.NoError(t, err)
		if res.EdgeConverged {
			edgeOk++
		}
	}
	assert.GreaterOrEqual(t, edgeOk, 19)
}

// Exact-set convergence: with two attackers on disjoint branches, a
// scheme only latches once it reports precisely both attacker leaves, no
// more, no fewer.
func TestRunTrial_TwoAttackers(t *testing.T) {
	tree := testTopology(t)
	env := testEnv(t, state.ExperimentCfg{})
	cfg := state.TrialCfg{
		P:            0.5,
		X:            200,
		Attackers:    2,
		NormalUsers:  1,
		MaxTicks:     500,
		EdgeStrategy: state.EdgeStrategyGraph,
	}

	nodeOk, edgeOk := 0, 0
	for seed := uint64(0); seed < 20; seed++ {
		res, err := RunTrial(env, tree, cfg, seed)
		require.NoError(t, err)
		require.Len(t, res.Attackers, 2)
		if res.NodeConverged {
			nodeOk++
		}
		if res.EdgeConverged {
			edgeOk++
		}
	}
	assert.GreaterOrEqual(t, nodeOk, 18, "node scheme accuracy")
	assert.GreaterOrEqual(t, edgeOk, 18, "edge scheme accuracy")
}

func TestRunTrial_Deterministic(t *testing.T) {
	tree := testTopology(t)
	env := testEnv(t, state.ExperimentCfg{})
	cfg := state.TrialCfg{
		P:           0.4,
		X:           10,
		Attackers:   1,
		NormalUsers: 1,
		MaxTicks:    50,
	}

	a, err := RunTrial(env, tree, cfg, 1234)
	require.NoError(t, err)
	b, err := RunTrial(env, tree, cfg, 1234)
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different results (-a +b):\n%s", diff)
	}
}

// A scheme that runs out of budget reports a plain non-result.
func TestRunTrial_BudgetExhaustion(t *testing.T) {
	tree := testTopology(t)
	env := testEnv(t, state.ExperimentCfg{})
	// p = 1 keeps edge marks pinned to the first hop, so the edge scheme
	// cannot see the attacker leaf; one tick gives node sampling no
	// realistic chance either
	cfg := state.TrialCfg{
		P:            1.0,
		X:            1,
		Attackers:    1,
		NormalUsers:  1,
		MaxTicks:     1,
		EdgeStrategy: state.EdgeStrategyGraph,
	}

	res, err := RunTrial(env, tree, cfg, 5)
	require.NoError(t, err)
	assert.False(t, res.EdgeConverged)
	assert.Equal(t, 0, res.EdgeTick)
}

func TestRunTrial_RejectsBadConfig(t *testing.T) {
	tree := testTopology(t)
	env := testEnv(t, state.ExperimentCfg{})

	cfg := state.TrialCfg{P: 1.5, X: 10, Attackers: 1, MaxTicks: 10}
	_, err := RunTrial(env, tree, cfg, 1)
	assert.Error(t, err)

	// more attackers than branches surfaces as a setup error
	cfg = state.TrialCfg{P: 0.5, X: 10, Attackers: 5, MaxTicks: 10}
	_, err = RunTrial(env, tree, cfg, 1)
	assert.ErrorContains(t, err, "branches")
}
