package cmd

import (
	"github.com/nettrace-lab/ppmtrace/core"
	"github.com/nettrace-lab/ppmtrace/state"
	"github.com/spf13/cobra"
)

var trialFlags struct {
	p         float64
	x         int
	attackers int
	normal    int
	ticks     int
	strategy  string
	seed      uint64
}

// trialCmd represents the trial command
var trialCmd = &cobra.Command{
	Use:   "trial <topology>",
	Short: "Run a single seeded trial",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := state.TrialCfg{
			P:            trialFlags.p,
			X:            trialFlags.x,
			Attackers:    trialFlags.attackers,
			NormalUsers:  trialFlags.normal,
			MaxTicks:     trialFlags.ticks,
			EdgeStrategy: state.EdgeStrategy(trialFlags.strategy),
		}
		return core.StartTrial(args[0], cfg, trialFlags.seed, verbose)
	},
}

func init() {
	rootCmd.AddCommand(trialCmd)
	trialCmd.Flags().Float64VarP(&trialFlags.p, "probability", "p", 0.5, "per-router marking probability")
	trialCmd.Flags().IntVarP(&trialFlags.x, "rate", "x", 100, "attacker packets per tick")
	trialCmd.Flags().IntVarP(&trialFlags.attackers, "attackers", "a", state.DefaultAttackers, "number of attacker leaves")
	trialCmd.Flags().IntVarP(&trialFlags.normal, "normal", "n", state.DefaultNormalUsers, "number of normal-user leaves")
	trialCmd.Flags().IntVarP(&trialFlags.ticks, "ticks", "t", state.DefaultMaxTicks, "tick budget")
	trialCmd.Flags().StringVar(&trialFlags.strategy, "edge-strategy", string(state.EdgeStrategyGraph), "edge reconstruction strategy (chain|graph)")
	trialCmd.Flags().Uint64VarP(&trialFlags.seed, "seed", "s", 0, "trial seed")
}
