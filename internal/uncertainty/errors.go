package uncertainty

import "errors"

// Numeric-precondition failures are raised at the stage that detects them and are
// never coerced into NaN or clamped values.
var (
	ErrEmptyGeneration        = errors.New("no generated tokens to analyze")
	ErrRaggedScores           = errors.New("per-step score vectors differ in length")
	ErrInvalidTopK            = errors.New("top-k outside the available width")
	ErrDegenerateDistribution = errors.New("confidence row has zero total pseudo-count")
	ErrInsufficientTokens     = errors.New("sequence shorter than the aggregation width")
)
