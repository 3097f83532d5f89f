package state

import (
	"fmt"
	"slices"
)

func probabilityValidator(p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("marking probability %v is not in [0, 1]", p)
	}
	return nil
}

func edgeStrategyValidator(s EdgeStrategy, attackers int) error {
	switch s {
	case "", EdgeStrategyGraph:
		return nil
	case EdgeStrategyChain:
		if attackers > 1 {
			return fmt.Errorf("edge strategy %q only supports a single attacker, got %d", s, attackers)
		}
		return nil
	default:
		return fmt.Errorf("unknown edge strategy %q", s)
	}
}

func TrialConfigValidator(cfg *TrialCfg) error {
	if err := probabilityValidator(cfg.P); err != nil {
		return err
	}
	if cfg.X <= 0 {
		return fmt.Errorf("attack-rate multiplier must be positive, got %d", cfg.X)
	}
	if cfg.Attackers <= 0 {
		return fmt.Errorf("at least one attacker is required, got %d", cfg.Attackers)
	}
	if cfg.NormalUsers < 0 {
		return fmt.Errorf("normal user count must not be negative, got %d", cfg.NormalUsers)
	}
	if cfg.MaxTicks <= 0 {
		return fmt.Errorf("tick budget must be positive, got %d", cfg.MaxTicks)
	}
	return edgeStrategyValidator(cfg.EdgeStrategy, cfg.Attackers)
}

func ExperimentConfigValidator(cfg *ExperimentCfg) error {
	if cfg.TopologyPath == "" {
		return fmt.Errorf("no topology file configured")
	}
	if len(cfg.PValues) == 0 {
		return fmt.Errorf("p_values must not be empty")
	}
	for _, p := range cfg.PValues {
		if err := probabilityValidator(p); err != nil {
			return err
		}
	}
	if len(cfg.XValues) == 0 {
		return fmt.Errorf("x_values must not be empty")
	}
	for _, x := range cfg.XValues {
		if x <= 0 {
			return fmt.Errorf("attack-rate multiplier must be positive, got %d", x)
		}
	}
	if cfg.Trials <= 0 {
		return fmt.Errorf("trial count must be positive, got %d", cfg.Trials)
	}
	if cfg.Attackers <= 0 {
		return fmt.Errorf("at least one attacker is required, got %d", cfg.Attackers)
	}
	if cfg.NormalUsers < 0 {
		return fmt.Errorf("normal user count must not be negative, got %d", cfg.NormalUsers)
	}
	if cfg.MaxTicks <= 0 {
		return fmt.Errorf("tick budget must be positive, got %d", cfg.MaxTicks)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("worker count must not be negative, got %d", cfg.Workers)
	}
	if cfg.Limits != nil {
		if err := TopologyLimitsValidator(cfg.Limits); err != nil {
			return err
		}
	}
	return edgeStrategyValidator(cfg.EdgeStrategy, cfg.Attackers)
}

func TopologyLimitsValidator(l *TopologyLimits) error {
	if l.MinRouters <= 0 || l.MaxRouters < l.MinRouters {
		return fmt.Errorf("router bounds [%d, %d] are invalid", l.MinRouters, l.MaxRouters)
	}
	if len(l.BranchChoices) == 0 {
		return fmt.Errorf("branch_choices must not be empty")
	}
	if slices.Min(l.BranchChoices) <= 0 {
		return fmt.Errorf("branch counts must be positive, got %v", l.BranchChoices)
	}
	if l.MaxHops <= 0 {
		return fmt.Errorf("max_hops must be positive, got %d", l.MaxHops)
	}
	return nil
}
