package chem

import "github.com/bits-and-blooms/bitset"

// Tanimoto returns the Tanimoto coefficient between two fingerprints:
// |a AND b| / |a OR b|. Two all-zero fingerprints score 0.
func Tanimoto(a, b *bitset.BitSet) float64 {
	union := a.UnionCardinality(b)
	if union == 0 {
		return 0
	}
	return float64(a.IntersectionCardinality(b)) / float64(union)
}
