// Package commands wires the svcconfig command-line interface.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Execute runs the root command.
func Execute(version, commit string) error {
	return newRootCommand(version, commit).Execute()
}

func newRootCommand(version, commit string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "svcconfig",
		Short: "Validate RPC service configuration documents",
		Long: `svcconfig validates service configuration documents against the
registered config parsers (client channel, message size, retry) and
reports every problem in the document at once, grouped by the field
that caused it.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newVetCommand())

	return rootCmd
}
