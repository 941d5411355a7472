package usecase

import (
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/PiyumiSL/Drug-Discovery/internal/chem"
	"github.com/PiyumiSL/Drug-Discovery/internal/domain"
)

// ScoredResult pairs a result with its Tanimoto similarity to a query.
type ScoredResult struct {
	domain.FingerprintResult
	Score float64
}

// RankBySimilarity scores every result against query and returns the top k
// by Tanimoto coefficient, highest first. Ties keep dataset order. k <= 0
// returns the full ranking.
func RankBySimilarity(query *bitset.BitSet, results domain.ResultSet, k int) []ScoredResult {
	scored := make([]ScoredResult, 0, len(results))
	for _, res := range results {
		scored = append(scored, ScoredResult{
			FingerprintResult: res,
			Score:             chem.Tanimoto(query, res.Fingerprint),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > 0 && k < len(scored) {
		scored = scored[:k]
	}
	return scored
}
