package uncertainty

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ExtractScores stacks the per-step score vectors of one generated sequence into a
// (tokens x vocab) matrix. No numeric transformation is applied.
func ExtractScores(steps StepScores) (*mat.Dense, error) {
	if len(steps) == 0 || len(steps[0]) == 0 {
		return nil, ErrEmptyGeneration
	}

	vocabSize := len(steps[0])

	scores := mat.NewDense(len(steps), vocabSize, nil)

	for stepIdx, stepScores := range steps {
		if len(stepScores) != vocabSize {
			return nil, fmt.Errorf("step %d has %d scores, want %d: %w", stepIdx, len(stepScores), vocabSize, ErrRaggedScores)
		}
		scores.SetRow(stepIdx, stepScores)
	}

	return scores, nil
}
