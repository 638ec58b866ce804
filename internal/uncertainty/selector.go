package uncertainty

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Softmax converts one row of raw scores into a probability distribution. Shifting by
// the row maximum keeps the exponentials finite for large logits; rank order is
// preserved.
func Softmax(scores []float64) []float64 {
	result := make([]float64, len(scores))

	maxScore := floats.Max(scores)

	var sumExp float64
	for i, score := range scores {
		exp := math.Exp(score - maxScore)
		result[i] = exp
		sumExp += exp
	}

	floats.Scale(1.0/sumExp, result)

	return result
}

// TopKConfidence reduces each row of the score matrix to its topK largest values,
// sorted descending, producing a (tokens x topK) confidence matrix. When applySoftmax
// is set, each row is normalized into a probability distribution before selection.
func TopKConfidence(scores *mat.Dense, applySoftmax bool, topK int) (*mat.Dense, error) {
	rows, cols := scores.Dims()

	if topK < 1 || topK > cols {
		return nil, fmt.Errorf("top-k %d with vocabulary width %d: %w", topK, cols, ErrInvalidTopK)
	}

	confidences := mat.NewDense(rows, topK, nil)

	for rowIdx := range rows {
		rowScores := mat.Row(nil, rowIdx, scores)
		if applySoftmax {
			rowScores = Softmax(rowScores)
		}

		sort.Sort(sort.Reverse(sort.Float64Slice(rowScores)))
		confidences.SetRow(rowIdx, rowScores[:topK])
	}

	return confidences, nil
}
