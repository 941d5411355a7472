package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	_ "github.com/lib/pq"

	"github.com/PiyumiSL/Drug-Discovery/internal/chem"
	"github.com/PiyumiSL/Drug-Discovery/internal/config"
	"github.com/PiyumiSL/Drug-Discovery/internal/infrastructure/chembl"
	"github.com/PiyumiSL/Drug-Discovery/internal/infrastructure/export"
	"github.com/PiyumiSL/Drug-Discovery/internal/infrastructure/storage"
	"github.com/PiyumiSL/Drug-Discovery/internal/input"
	"github.com/PiyumiSL/Drug-Discovery/internal/logging"
	"github.com/PiyumiSL/Drug-Discovery/internal/ports"
	"github.com/PiyumiSL/Drug-Discovery/internal/source"
	"github.com/PiyumiSL/Drug-Discovery/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	exporter ports.ResultExporter
	db       *sql.DB
}

// New builds a runnable application instance from configuration.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	client := &http.Client{Timeout: cfg.HTTP.Timeout()}

	registry := source.NewRegistry()
	registry.Register(chembl.NewJSONSource(client))
	registry.Register(chembl.NewHTMLSource(client, cfg.Source.HTMLSelector))

	src, err := registry.Resolve(cfg.Source.Strategy)
	if err != nil {
		return nil, err
	}

	var (
		db         *sql.DB
		repository ports.ResultRepository
	)
	if cfg.Database.DSN != "" {
		db, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		repository = storage.NewPostgresRepository(db)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     src,
		Calculator: chem.NewCalculator(cfg.Fingerprint.Radius, cfg.Fingerprint.Bits),
		Repository: repository,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		pipeline: pipeline,
		exporter: export.NewCSVExporter(),
		db:       db,
	}, nil
}

// Run processes inputPath end to end and writes the CSV artifact to
// outputPath ("-" means stdout). Only an unreadable input table or a failed
// export is fatal; row-level failures surface as warnings.
func (a *Application) Run(ctx context.Context, inputPath, outputPath string) error {
	rows, err := input.ReadTableFile(inputPath)
	if err != nil {
		return err
	}
	a.logger.Info("input table parsed", "rows", len(rows))

	results, warnings := a.pipeline.Run(ctx, rows)

	out := os.Stdout
	if outputPath != "" && outputPath != "-" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := a.exporter.Export(out, results); err != nil {
		return fmt.Errorf("export results: %w", err)
	}

	a.logger.Info("run finished", "results", len(results), "skipped", len(warnings))
	return nil
}

// Close releases the optional database handle.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
