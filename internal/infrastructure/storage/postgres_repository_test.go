package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/bits-and-blooms/bitset"

	"github.com/PiyumiSL/Drug-Discovery/internal/domain"
)

func TestUpsertResultSQL(t *testing.T) {
	t.Parallel()

	fp := bitset.New(2048)
	fp.Set(42)

	repo := NewPostgresRepository(nil)
	query, args, err := repo.upsertResult(domain.FingerprintResult{
		Identifier:      "CHEMBL25",
		CanonicalSMILES: "CC(=O)Oc1ccccc1C(=O)O",
		Fingerprint:     fp,
	}, "COX-1")
	if err != nil {
		t.Fatalf("upsertResult error: %v", err)
	}

	if !strings.HasPrefix(query, "INSERT INTO compound_fingerprints") {
		t.Fatalf("unexpected query: %s", query)
	}
	if !strings.Contains(query, "ON CONFLICT (chembl_id) DO UPDATE") {
		t.Fatalf("upsert suffix missing: %s", query)
	}
	if !strings.Contains(query, "$5") {
		t.Fatalf("expected dollar placeholders: %s", query)
	}

	if len(args) != 5 {
		t.Fatalf("expected 5 args, got %d", len(args))
	}
	if args[0] != "CHEMBL25" || args[1] != "COX-1" {
		t.Fatalf("unexpected args: %v", args[:2])
	}
	if args[4] != uint(2048) {
		t.Fatalf("expected num_bits 2048, got %v", args[4])
	}
}

func TestSaveResultWithoutDB(t *testing.T) {
	t.Parallel()

	repo := NewPostgresRepository(nil)
	err := repo.SaveResult(context.Background(), domain.FingerprintResult{
		Identifier:  "CHEMBL25",
		Fingerprint: bitset.New(2048),
	}, "")
	if err != nil {
		t.Fatalf("nil db should be a no-op, got %v", err)
	}
}
