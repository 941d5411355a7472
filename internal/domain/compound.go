package domain

import "github.com/bits-and-blooms/bitset"

// CompoundRow is one record of the uploaded input table: a compound
// identifier, the URL serving its structure data, and a free-form target label.
type CompoundRow struct {
	Identifier string
	SourceURL  string
	Target     string
}

// FingerprintResult is a fully processed row: both the fetch and the
// fingerprint computation succeeded.
type FingerprintResult struct {
	Identifier      string
	CanonicalSMILES string
	Fingerprint     *bitset.BitSet
}

// ResultSet keeps successful results in input-row order.
type ResultSet []FingerprintResult

// Identifiers returns the identifiers in result order.
func (rs ResultSet) Identifiers() []string {
	ids := make([]string, len(rs))
	for i, r := range rs {
		ids[i] = r.Identifier
	}
	return ids
}

// RowWarning records why a row was excluded from the result set.
type RowWarning struct {
	Identifier string
	SourceURL  string
	Reason     string
}
