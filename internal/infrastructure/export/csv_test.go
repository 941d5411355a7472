package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bits-and-blooms/bitset"

	"github.com/PiyumiSL/Drug-Discovery/internal/domain"
)

func sampleResult(id, smiles string, bits ...uint) domain.FingerprintResult {
	fp := bitset.New(2048)
	for _, b := range bits {
		fp.Set(b)
	}
	return domain.FingerprintResult{Identifier: id, CanonicalSMILES: smiles, Fingerprint: fp}
}

func TestExportRoundTrip(t *testing.T) {
	t.Parallel()

	results := domain.ResultSet{
		sampleResult("CHEMBL25", "CC(=O)Oc1ccccc1C(=O)O", 3, 17, 2047),
		sampleResult("CHEMBL545", "CCO", 0, 1024),
	}

	var buf bytes.Buffer
	if err := NewCSVExporter().Export(&buf, results); err != nil {
		t.Fatalf("Export error: %v", err)
	}

	parsed, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}

	if len(parsed) != len(results) {
		t.Fatalf("expected %d rows, got %d", len(results), len(parsed))
	}
	for i := range results {
		if parsed[i].Identifier != results[i].Identifier {
			t.Fatalf("row %d identifier mismatch: %s", i, parsed[i].Identifier)
		}
		if parsed[i].CanonicalSMILES != results[i].CanonicalSMILES {
			t.Fatalf("row %d smiles mismatch: %s", i, parsed[i].CanonicalSMILES)
		}
		if !parsed[i].Fingerprint.Equal(results[i].Fingerprint) {
			t.Fatalf("row %d fingerprint mismatch", i)
		}
	}
}

func TestExportHeaderAndOrder(t *testing.T) {
	t.Parallel()

	results := domain.ResultSet{
		sampleResult("B", "CCO", 1),
		sampleResult("A", "C", 2),
	}

	var buf bytes.Buffer
	if err := NewCSVExporter().Export(&buf, results); err != nil {
		t.Fatalf("Export error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "ChEMBL_ID,SMILES,Fingerprint" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	// result order is preserved, never re-sorted
	if !strings.HasPrefix(lines[1], "B,") || !strings.HasPrefix(lines[2], "A,") {
		t.Fatalf("row order not preserved: %s / %s", lines[1], lines[2])
	}
}

func TestFormatBitsWidth(t *testing.T) {
	t.Parallel()

	fp := bitset.New(8)
	fp.Set(1)
	fp.Set(7)
	if got := FormatBits(fp); got != "0 1 0 0 0 0 0 1" {
		t.Fatalf("unexpected rendering: %q", got)
	}
}

func TestParseBitsRejectsJunk(t *testing.T) {
	t.Parallel()

	if _, err := ParseBits("0 1 2"); err == nil {
		t.Fatal("expected error for non-binary digit")
	}
	if _, err := ParseBits("   "); err == nil {
		t.Fatal("expected error for empty field")
	}
}
