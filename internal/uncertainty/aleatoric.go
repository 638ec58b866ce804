package uncertainty

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext"
)

// Aleatoric computes the per-token aleatoric uncertainty of one confidence matrix.
// For each token row c with alpha_0 = sum(c), the value is the negated expected
// log-probability gap under the Dirichlet posterior:
//
//	-sum_i( (c_i / alpha_0) * (digamma(c_i + 1) - digamma(alpha_0 + 1)) )
//
// One value per token row; aggregation across tokens is the aggregator's job.
func Aleatoric(confidences *mat.Dense) ([]float64, error) {
	rows, _ := confidences.Dims()

	aleatoric := make([]float64, rows)

	for rowIdx := range rows {
		row := mat.Row(nil, rowIdx, confidences)

		alpha0 := floats.Sum(row)
		if alpha0 == 0 {
			return nil, fmt.Errorf("token %d: %w", rowIdx, ErrDegenerateDistribution)
		}

		digammaAlpha0 := mathext.Digamma(alpha0 + 1)

		var weightedSum float64
		for _, c := range row {
			weightedSum += (c / alpha0) * (mathext.Digamma(c+1) - digammaAlpha0)
		}

		aleatoric[rowIdx] = -weightedSum
	}

	return aleatoric, nil
}
