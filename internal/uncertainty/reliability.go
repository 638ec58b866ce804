package uncertainty

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// AggregateReliability combines the sequence-level epistemic scalar with the per-token
// aleatoric values into one reliability scalar. The epistemic scalar is broadcast
// across all tokens, so the per-token reliability is
//
//	reliability[t] = -epistemic * aleatoric[t]
//
// The final scalar is the mean of the topKInconfident largest per-token values,
// letting the most uncertain tokens dominate the estimate.
func AggregateReliability(epistemic float64, aleatoric []float64, topKInconfident int) (float64, error) {
	if topKInconfident < 1 {
		return 0, fmt.Errorf("aggregation width %d: %w", topKInconfident, ErrInvalidTopK)
	}
	if len(aleatoric) < topKInconfident {
		return 0, fmt.Errorf("%d tokens with aggregation width %d: %w", len(aleatoric), topKInconfident, ErrInsufficientTokens)
	}

	reliability := make([]float64, len(aleatoric))
	for i, a := range aleatoric {
		reliability[i] = -epistemic * a
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(reliability)))

	return floats.Sum(reliability[:topKInconfident]) / float64(topKInconfident), nil
}
