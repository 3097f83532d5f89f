package ppm

import "github.com/nettrace-lab/ppmtrace/state"

// NodePacket is the logical header a node-sampling packet carries: the
// last router that stamped it, if any. It lives for a single leaf-to-root
// traversal.
type NodePacket struct {
	Node   state.RouterID
	Marked bool
}

// EdgeMark is the logical header an edge-sampling packet carries. Start
// is the router that began the current mark, End the router immediately
// downstream of it, and Distance the hop count since the mark began.
type EdgeMark struct {
	Start    state.RouterID
	End      state.RouterID
	HasStart bool
	HasEnd   bool
	Distance int
}

// Edge is one candidate edge of the attack path, inferred at the victim
// from accumulated EdgeMark samples. Start is the node farther from the
// victim, End the node one hop closer.
type Edge struct {
	Start state.RouterID
	End   state.RouterID
}
