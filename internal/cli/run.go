package cli

import (
	"github.com/spf13/cobra"

	"github.com/PiyumiSL/Drug-Discovery/internal/app"
	"github.com/PiyumiSL/Drug-Discovery/internal/config"
	"github.com/PiyumiSL/Drug-Discovery/internal/logging"
)

func newRunCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		strategy   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process an input table and export fingerprints as CSV",
		Example: `  chemfp run -i compounds.csv -o fingerprints.csv
  chemfp run -i compounds.csv > fingerprints.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if strategy != "" {
				cfg.Source.Strategy = strategy
			}

			logger := logging.New(cfg.Logging.Level)
			application, err := app.New(cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.Run(cmd.Context(), inputPath, outputPath)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "input table: identifier,url,target per line, no header")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "-", "output CSV path, - for stdout")
	cmd.Flags().StringVar(&strategy, "source", "", "structure source strategy (chembl-json, html)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
