package state

import "slices"

// RouterID identifies a single node in the simulated topology. The victim
// is always router 0; every other id is a router (or leaf host) placed
// somewhere in the tree below it.
type RouterID int

// EdgeStrategy selects the victim-side reconstruction used for the edge
// sampling scheme during a trial.
type EdgeStrategy string

const (
	// EdgeStrategyChain reconstructs a single path by chaining
	// distance-indexed edges. Only meaningful with one attacker.
	EdgeStrategyChain EdgeStrategy = "chain"
	// EdgeStrategyGraph builds the distance-pruned reconstruction graph
	// and reads attackers off its in-degree-zero nodes.
	EdgeStrategyGraph EdgeStrategy = "graph"
)

// TopologyLimits are the structural bounds a loaded topology must satisfy
// before any trial is allowed to run.
type TopologyLimits struct {
	MinRouters    int   `yaml:"min_routers"`    // routers excluding the victim
	MaxRouters    int   `yaml:"max_routers"`    // routers excluding the victim
	BranchChoices []int `yaml:"branch_choices"` // allowed out-degrees of the victim
	MaxHops       int   `yaml:"max_hops"`       // max root-to-leaf hop count
}

// TrialCfg configures a single seeded trial.
type TrialCfg struct {
	P            float64      // per-router marking probability
	X            int          // attacker packets per tick, relative to one normal packet
	Attackers    int          // number of attacker leaves, at most one per branch
	NormalUsers  int          `yaml:"normal_users"` // number of background leaves
	MaxTicks     int          `yaml:"max_ticks"`    // hard tick budget
	EdgeStrategy EdgeStrategy `yaml:"edge_strategy,omitempty"`
}

// ExperimentCfg configures a full sweep over marking probabilities and
// attack-rate multipliers.
type ExperimentCfg struct {
	TopologyPath string    `yaml:"topology"`
	PValues      []float64 `yaml:"p_values"`
	XValues      []int     `yaml:"x_values"`
	Trials       int       // repetitions per (x, p) combination
	Attackers    int
	NormalUsers  int             `yaml:"normal_users"`
	MaxTicks     int             `yaml:"max_ticks"`
	EdgeStrategy EdgeStrategy    `yaml:"edge_strategy,omitempty"`
	Seed         uint64          // parent seed; per-trial seeds are derived from it
	Workers      int             `yaml:",omitempty"` // trial parallelism, defaults to GOMAXPROCS
	CsvPath      string          `yaml:"csv_path,omitempty"`
	LogPath      string          `yaml:"log_path,omitempty"` // if not empty, logs are also written to this file
	Limits       *TopologyLimits `yaml:"limits,omitempty"`   // nil means DefaultTopologyLimits
}

// ExpandExperimentConfig fills omitted fields with the default sweep
// parameters before validation.
func ExpandExperimentConfig(cfg *ExperimentCfg) {
	if len(cfg.PValues) == 0 {
		cfg.PValues = slices.Clone(DefaultPValues)
	}
	if len(cfg.XValues) == 0 {
		cfg.XValues = slices.Clone(DefaultXValues)
	}
	if cfg.Trials == 0 {
		cfg.Trials = DefaultTrials
	}
	if cfg.Attackers == 0 {
		cfg.Attackers = DefaultAttackers
	}
	if cfg.NormalUsers == 0 {
		cfg.NormalUsers = DefaultNormalUsers
	}
	if cfg.MaxTicks == 0 {
		cfg.MaxTicks = DefaultMaxTicks
	}
	if cfg.EdgeStrategy == "" {
		cfg.EdgeStrategy = EdgeStrategyGraph
	}
}

// TrialCfgAt returns the per-trial configuration for one grid cell.
func (c *ExperimentCfg) TrialCfgAt(x int, p float64) TrialCfg {
	strategy := c.EdgeStrategy
	if strategy == "" {
		strategy = EdgeStrategyGraph
	}
	return TrialCfg{
		P:            p,
		X:            x,
		Attackers:    c.Attackers,
		NormalUsers:  c.NormalUsers,
		MaxTicks:     c.MaxTicks,
		EdgeStrategy: strategy,
	}
}
