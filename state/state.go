package state

import (
	"context"
	"log/slog"
)

// Env carries everything a simulation component needs from its caller.
// It is read-only once built; per-trial mutable state (observation
// buffers, random streams) is owned by the trial itself.
type Env struct {
	ExperimentCfg
	Context context.Context
	Cancel  context.CancelCauseFunc
	Log     *slog.Logger
}

// TopoLimits resolves the configured limits, falling back to the defaults.
func (e *Env) TopoLimits() TopologyLimits {
	if e.Limits != nil {
		return *e.Limits
	}
	return DefaultTopologyLimits
}
