package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for cargosweep.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cargosweep",
		Short: "Recursively clean Cargo build artifacts",
		Long: `cargosweep scans a directory tree for Cargo projects and runs
'cargo clean' on each of them. Target directories pile up quickly across a
workspace full of checkouts and experiments; cargosweep reclaims that space
in one pass.

The scan never descends into a project's target directory, and the default
skip list keeps it out of .git, .rustup, and .cargo. Use --dry-run to see
how much space a clean would reclaim without deleting anything.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCleanCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}
