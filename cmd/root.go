package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ppmtrace",
	Short: "Probabilistic packet marking traceback simulator",
	Long: `ppmtrace simulates IP traceback with probabilistic packet marking.
It replays synthetic attack traffic through a tree topology, lets routers
stamp packets under the node and edge sampling schemes, and measures how
quickly the victim can reconstruct the attacker locations.`,
}

var verbose bool

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}
