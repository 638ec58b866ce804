package uncertainty

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func randomScoreMatrix(rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rand.Float64()*20 - 10
	}
	return mat.NewDense(rows, cols, data)
}

func TestExtractScores(t *testing.T) {
	scores, err := ExtractScores(StepScores{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	rows, cols := scores.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, []float64{4, 5, 6}, mat.Row(nil, 1, scores))
}

func TestExtractScores_Empty(t *testing.T) {
	_, err := ExtractScores(nil)
	assert.ErrorIs(t, err, ErrEmptyGeneration)

	_, err = ExtractScores(StepScores{{}})
	assert.ErrorIs(t, err, ErrEmptyGeneration)
}

func TestExtractScores_Ragged(t *testing.T) {
	_, err := ExtractScores(StepScores{{1, 2, 3}, {4, 5}})
	assert.ErrorIs(t, err, ErrRaggedScores)
}

func TestTopKConfidence_RowsSortedDescending(t *testing.T) {
	scores := randomScoreMatrix(16, 50)
	topK := 5

	confidences, err := TopKConfidence(scores, false, topK)
	require.NoError(t, err)

	rows, cols := confidences.Dims()
	require.Equal(t, 16, rows)
	require.Equal(t, topK, cols)

	for rowIdx := range rows {
		confRow := mat.Row(nil, rowIdx, confidences)
		sourceMax := floats.Max(mat.Row(nil, rowIdx, scores))

		for i, c := range confRow {
			assert.LessOrEqual(t, c, sourceMax)
			if i > 0 {
				assert.GreaterOrEqual(t, confRow[i-1], c)
			}
		}
	}
}

func TestTopKConfidence_SoftmaxRowsAreProbabilities(t *testing.T) {
	scores := randomScoreMatrix(8, 30)

	confidences, err := TopKConfidence(scores, true, 4)
	require.NoError(t, err)

	rows, _ := confidences.Dims()
	for rowIdx := range rows {
		confRow := mat.Row(nil, rowIdx, confidences)
		for _, c := range confRow {
			assert.GreaterOrEqual(t, c, 0.0)
		}
		assert.LessOrEqual(t, floats.Sum(confRow), 1.0+1e-12)
	}
}

func TestTopKConfidence_SelectsLargest(t *testing.T) {
	scores := mat.NewDense(1, 5, []float64{5, 4, 1, 0, 0})

	confidences, err := TopKConfidence(scores, false, 2)
	require.NoError(t, err)

	assert.Equal(t, []float64{5, 4}, mat.Row(nil, 0, confidences))
}

func TestTopKConfidence_InvalidTopK(t *testing.T) {
	scores := randomScoreMatrix(3, 5)

	_, err := TopKConfidence(scores, false, 6)
	assert.ErrorIs(t, err, ErrInvalidTopK)

	_, err = TopKConfidence(scores, false, 0)
	assert.ErrorIs(t, err, ErrInvalidTopK)
}

func TestSoftmax_LargeLogitsStayFinite(t *testing.T) {
	probs := Softmax([]float64{1000, 999, 0})

	assert.InDelta(t, 1.0, floats.Sum(probs), 1e-12)
	assert.Greater(t, probs[0], probs[1])
}
