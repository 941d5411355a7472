package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/PiyumiSL/Drug-Discovery/internal/domain"
	"github.com/PiyumiSL/Drug-Discovery/internal/infrastructure/export"
	"github.com/PiyumiSL/Drug-Discovery/internal/ports"
)

// PostgresRepository persists computed fingerprints into Postgres. It is an
// optional sink: the pipeline runs without it when no DSN is configured.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ResultRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// SaveResult upserts one fingerprint result keyed by compound identifier.
func (r *PostgresRepository) SaveResult(ctx context.Context, result domain.FingerprintResult, target string) error {
	if r.db == nil {
		return nil
	}

	query, args, err := r.upsertResult(result, target)
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert fingerprint %s: %w", result.Identifier, err)
	}
	return nil
}

func (r *PostgresRepository) upsertResult(result domain.FingerprintResult, target string) (string, []interface{}, error) {
	return r.builder.
		Insert("compound_fingerprints").
		Columns("chembl_id", "target", "canonical_smiles", "fingerprint", "num_bits").
		Values(
			result.Identifier,
			target,
			result.CanonicalSMILES,
			export.FormatBits(result.Fingerprint),
			result.Fingerprint.Len(),
		).
		Suffix(`ON CONFLICT (chembl_id) DO UPDATE
		        SET canonical_smiles = EXCLUDED.canonical_smiles,
		            fingerprint = EXCLUDED.fingerprint,
		            num_bits = EXCLUDED.num_bits,
		            target = EXCLUDED.target,
		            updated_at = NOW()`).
		ToSql()
}
