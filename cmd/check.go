package cmd

import (
	"fmt"

	"github.com/nettrace-lab/ppmtrace/state"
	"github.com/nettrace-lab/ppmtrace/topo"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <topology>",
	Short: "Validate a topology file",
	Long:  `Loads a topology edge list, verifies the tree-shape and size constraints, and prints a structural summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := topo.Load(args[0])
		if err != nil {
			return err
		}
		if err := topo.Validate(tree, state.DefaultTopologyLimits); err != nil {
			return err
		}
		fmt.Println("Topology OK")
		fmt.Printf("Routers: %d\n", tree.RouterCount())
		fmt.Printf("Branches from victim: %d -> %v\n", len(tree.Branches()), tree.Branches())
		fmt.Printf("Leaves: %v\n", tree.Leaves())
		fmt.Printf("Max depth: %d\n", tree.MaxDepth())
		return nil
	},
	Args: cobra.ExactArgs(1),
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
