package usecase

import (
	"context"
	"log/slog"

	"github.com/PiyumiSL/Drug-Discovery/internal/domain"
	"github.com/PiyumiSL/Drug-Discovery/internal/ports"
	"github.com/PiyumiSL/Drug-Discovery/internal/source"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source     source.Source
	Calculator ports.FingerprintCalculator
	Repository ports.ResultRepository
	Logger     *slog.Logger
}

// Pipeline drives each input row through fetch and fingerprint generation.
// Rows are processed strictly in input order; a failing row is excluded from
// the result set with one warning and never aborts the batch.
type Pipeline struct {
	source     source.Source
	calculator ports.FingerprintCalculator
	repository ports.ResultRepository
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		source:     deps.Source,
		calculator: deps.Calculator,
		repository: deps.Repository,
		logger:     logger,
	}
}

// Run processes every row and returns the successful results in input order
// plus one warning per skipped row.
func (p *Pipeline) Run(ctx context.Context, rows []domain.CompoundRow) (domain.ResultSet, []domain.RowWarning) {
	results := make(domain.ResultSet, 0, len(rows))
	var warnings []domain.RowWarning

	warn := func(row domain.CompoundRow, reason string) {
		p.logger.Warn("row skipped",
			"identifier", row.Identifier,
			"url", row.SourceURL,
			"reason", reason)
		warnings = append(warnings, domain.RowWarning{
			Identifier: row.Identifier,
			SourceURL:  row.SourceURL,
			Reason:     reason,
		})
	}

	for _, row := range rows {
		smiles, err := p.source.Fetch(ctx, row.SourceURL)
		if err != nil {
			warn(row, err.Error())
			continue
		}

		fp, err := p.calculator.Calculate(smiles)
		if err != nil {
			warn(row, err.Error())
			continue
		}

		result := domain.FingerprintResult{
			Identifier:      row.Identifier,
			CanonicalSMILES: smiles,
			Fingerprint:     fp,
		}
		results = append(results, result)

		if p.repository != nil {
			// persistence is a side channel: a failed save keeps the
			// row in the result set
			if err := p.repository.SaveResult(ctx, result, row.Target); err != nil {
				p.logger.Warn("persist failed", "identifier", row.Identifier, "error", err)
			}
		}
	}

	p.logger.Info("pipeline done", "rows", len(rows), "results", len(results), "skipped", len(warnings))
	return results, warnings
}
