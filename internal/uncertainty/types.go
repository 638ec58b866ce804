package uncertainty

import "gonum.org/v1/gonum/mat"

type StepScores [][]float64 // 2D: raw per-step score vectors, one row per generated token

type SequenceEstimate struct {
	Confidences *mat.Dense // 2D: top-k confidence values per generated token
	Epistemic   float64    // scalar: sequence-level epistemic uncertainty
	Aleatoric   []float64  // 1D: per-token aleatoric uncertainty
	Reliability float64    // scalar: final aggregated reliability
}
