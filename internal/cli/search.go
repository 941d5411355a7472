package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/PiyumiSL/Drug-Discovery/internal/chem"
	"github.com/PiyumiSL/Drug-Discovery/internal/config"
	"github.com/PiyumiSL/Drug-Discovery/internal/infrastructure/export"
	"github.com/PiyumiSL/Drug-Discovery/internal/usecase"
)

func newSearchCmd() *cobra.Command {
	var (
		querySMILES string
		datasetPath string
		topK        int
	)

	cmd := &cobra.Command{
		Use:     "search",
		Short:   "Rank an exported fingerprint file by Tanimoto similarity to a query SMILES",
		Example: `  chemfp search -q "CC(=O)Oc1ccccc1C(=O)O" -d fingerprints.csv -k 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			query, err := chem.Fingerprint(querySMILES, cfg.Fingerprint.Radius, cfg.Fingerprint.Bits)
			if err != nil {
				return fmt.Errorf("query structure: %w", err)
			}

			dataset, err := export.ReadFile(datasetPath)
			if err != nil {
				return fmt.Errorf("read dataset: %w", err)
			}

			ranked := usecase.RankBySimilarity(query, dataset, topK)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ChEMBL_ID\tTanimoto\tSMILES")
			for _, r := range ranked {
				fmt.Fprintf(w, "%s\t%.4f\t%s\n", r.Identifier, r.Score, r.CanonicalSMILES)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&querySMILES, "query", "q", "", "query structure as SMILES")
	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "", "CSV file produced by chemfp run")
	cmd.Flags().IntVarP(&topK, "top", "k", 5, "number of results to show, 0 for all")
	_ = cmd.MarkFlagRequired("query")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}
