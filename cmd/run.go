package cmd

import (
	"github.com/nettrace-lab/ppmtrace/core"
	"github.com/spf13/cobra"
)

var configPath string

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a full parameter sweep",
	Long: `Sweeps the configured marking probabilities and attack-rate multipliers,
repeats seeded trials per combination, and reports per-scheme accuracy and
convergence statistics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return core.Start(configPath, verbose)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&configPath, "config", "c", "data/experiment.yaml", "experiment config file")
}
