package core

import (
	"context"
	"log/slog"
	"testing"

	"github.com/nettrace-lab/ppmtrace/state"
	"github.com/nettrace-lab/ppmtrace/topo"
	"github.com/stretchr/testify/require"
)

// testTopology is a 4-branch tree with 16 routers and max depth 4:
//
//	0 ── 1 ── 5 ── 13
//	│    └── 6
//	├── 2 ── 7 ── 8 ── 14
//	├── 3 ── 9 ── 10 ── 15
//	└── 4 ── 11 ── 16
//	     └── 12
func testTopology(t *testing.T) *topo.Topology {
	tree, err := topo.New([]topo.Edge{
		{Parent: 0, Child: 1}, {Parent: 0, Child: 2}, {Parent: 0, Child: 3}, {Parent: 0, Child: 4},
		{Parent: 1, Child: 5}, {Parent: 1, Child: 6}, {Parent: 5, Child: 13},
		{Parent: 2, Child: 7}, {Parent: 7, Child: 8}, {Parent: 8, Child: 14},
		{Parent: 3, Child: 9}, {Parent: 9, Child: 10}, {Parent: 10, Child: 15},
		{Parent: 4, Child: 11}, {Parent: 4, Child: 12}, {Parent: 11, Child: 16},
	})
	require.NoError(t, err)
	return tree
}

func testEnv(t *testing.T, cfg state.ExperimentCfg) *state.Env {
	ctx, cancel := context.WithCancelCause(context.Background())
	t.Cleanup(func() { cancel(nil) })
	return &state.Env{
		ExperimentCfg: cfg,
		Context:       ctx,
		Cancel:        cancel,
		Log:           slog.New(slog.DiscardHandler),
	}
}
