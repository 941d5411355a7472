package ports

import (
	"context"
	"io"

	"github.com/bits-and-blooms/bitset"

	"github.com/PiyumiSL/Drug-Discovery/internal/domain"
)

// FingerprintCalculator turns a canonical SMILES string into a fixed-length
// binary fingerprint.
type FingerprintCalculator interface {
	Calculate(smiles string) (*bitset.BitSet, error)
}

// ResultRepository persists successful fingerprint results for later reuse.
type ResultRepository interface {
	SaveResult(ctx context.Context, result domain.FingerprintResult, target string) error
}

// ResultExporter serializes a result set into a downloadable artifact.
type ResultExporter interface {
	Export(w io.Writer, results domain.ResultSet) error
}
