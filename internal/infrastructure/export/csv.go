// Package export serializes fingerprint results into the downloadable CSV
// artifact and can re-parse such files for similarity search.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/PiyumiSL/Drug-Discovery/internal/domain"
	"github.com/PiyumiSL/Drug-Discovery/internal/ports"
)

// Header is the fixed column set of the output artifact.
var Header = []string{"ChEMBL_ID", "SMILES", "Fingerprint"}

// CSVExporter writes result sets as comma-separated text with the
// fingerprint rendered as space-separated 0/1 digits.
type CSVExporter struct{}

var _ ports.ResultExporter = (*CSVExporter)(nil)

// NewCSVExporter builds the exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export writes the header plus one row per result, preserving result order.
func (e *CSVExporter) Export(w io.Writer, results domain.ResultSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, res := range results {
		record := []string{res.Identifier, res.CanonicalSMILES, FormatBits(res.Fingerprint)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", res.Identifier, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read parses a previously exported file back into a result set.
func Read(r io.Reader) (domain.ResultSet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if header[0] != Header[0] || header[1] != Header[1] || header[2] != Header[2] {
		return nil, fmt.Errorf("unexpected header %v", header)
	}

	var results domain.ResultSet
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		fp, err := ParseBits(record[2])
		if err != nil {
			return nil, fmt.Errorf("row %s: %w", record[0], err)
		}
		results = append(results, domain.FingerprintResult{
			Identifier:      record[0],
			CanonicalSMILES: record[1],
			Fingerprint:     fp,
		})
	}
	return results, nil
}

// ReadFile is a convenience wrapper around Read.
func ReadFile(path string) (domain.ResultSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// FormatBits renders a fingerprint as its literal bit sequence, most
// significant position last ("0 1 0 ...").
func FormatBits(fp *bitset.BitSet) string {
	var sb strings.Builder
	n := fp.Len()
	sb.Grow(int(n) * 2)
	for i := uint(0); i < n; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if fp.Test(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ParseBits is the inverse of FormatBits.
func ParseBits(s string) (*bitset.BitSet, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty fingerprint field")
	}
	fp := bitset.New(uint(len(fields)))
	for i, f := range fields {
		switch f {
		case "1":
			fp.Set(uint(i))
		case "0":
		default:
			return nil, fmt.Errorf("bad fingerprint digit %q at position %d", f, i)
		}
	}
	return fp, nil
}
