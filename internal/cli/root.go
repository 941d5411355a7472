// Package cli defines the chemfp command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the root command with its subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chemfp",
		Short: "Fetch compound structures and compute Morgan fingerprints",
		Long: `chemfp reads a table of compound identifiers and structure URLs,
retrieves each compound's canonical SMILES, computes a fixed-length
Morgan fingerprint and exports the results as CSV. Exported files can
then be ranked against a query structure by Tanimoto similarity.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newSearchCmd())
	return cmd
}
