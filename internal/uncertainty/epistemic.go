package uncertainty

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Epistemic computes the sequence-level epistemic uncertainty of one confidence
// matrix. Each row is treated as Dirichlet pseudo-counts over k top candidates; the
// value is k divided by the total accumulated evidence, one unit of prior evidence
// per token:
//
//	epistemic = k / sum_t( sum_k(confidences[t]) + 1 )
//
// More mass on the top candidates means a larger denominator and a smaller value.
func Epistemic(confidences *mat.Dense) float64 {
	rows, cols := confidences.Dims()

	var evidence float64
	for rowIdx := range rows {
		evidence += floats.Sum(mat.Row(nil, rowIdx, confidences)) + 1
	}

	return float64(cols) / evidence
}
