package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PiyumiSL/Drug-Discovery/internal/chem"
	"github.com/PiyumiSL/Drug-Discovery/internal/domain"
	"github.com/PiyumiSL/Drug-Discovery/internal/infrastructure/export"
)

func writeDataset(t *testing.T, path string, smiles ...string) {
	t.Helper()
	var results domain.ResultSet
	for _, s := range smiles {
		fp, err := chem.Fingerprint(s, chem.DefaultRadius, chem.DefaultBits)
		require.NoError(t, err)
		results = append(results, domain.FingerprintResult{
			Identifier:      s,
			CanonicalSMILES: s,
			Fingerprint:     fp,
		})
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, export.NewCSVExporter().Export(f, results))
}

func TestSearchCommand(t *testing.T) {
	dataset := filepath.Join(t.TempDir(), "fingerprints.csv")
	writeDataset(t, dataset, "CCO", "c1ccccc1", "CC(=O)Oc1ccccc1C(=O)O")

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"search", "-q", "CCO", "-d", dataset, "-k", "2"})

	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3, "header plus two ranked rows")
	assert.Contains(t, lines[0], "Tanimoto")
	assert.Contains(t, lines[1], "CCO")
	assert.Contains(t, lines[1], "1.0000")
}

func TestSearchCommandInvalidQuery(t *testing.T) {
	dataset := filepath.Join(t.TempDir(), "fingerprints.csv")
	writeDataset(t, dataset, "CCO")

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"search", "-q", "not_a_valid_smiles", "-d", dataset})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, chem.ErrInvalidSMILES)
}
