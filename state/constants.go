package state

// Victim is the root of every topology. All traceback observations are
// collected here.
const Victim RouterID = 0

var (
	// NormalRate is how many packets each normal-user leaf sends per tick.
	// The attack-rate multiplier x is expressed relative to this.
	NormalRate = 1

	DefaultMaxTicks    = 500
	DefaultTrials      = 50
	DefaultAttackers   = 1
	DefaultNormalUsers = 1

	DefaultPValues = []float64{0.2, 0.4, 0.5, 0.6, 0.8}
	DefaultXValues = []int{10, 100, 1000}
)

// DefaultTopologyLimits bounds the synthetic topologies the simulator
// accepts: 10-20 routers excluding the victim, 3-5 branches off the
// victim, and at most 15 hops from any leaf to the victim.
var DefaultTopologyLimits = TopologyLimits{
	MinRouters:    10,
	MaxRouters:    20,
	BranchChoices: []int{3, 4, 5},
	MaxHops:       15,
}
