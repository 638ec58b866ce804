// Package uncertainty implements the LogTokU reliability pipeline: per-token top-k
// confidence selection followed by Dirichlet-based epistemic and aleatoric
// uncertainty estimation (https://arxiv.org/abs/2412.14737).
//
// The pipeline is stateless; each call is independent and idempotent, and callers may
// score sequences concurrently as long as each call owns its input arrays.
package uncertainty

import (
	"fmt"

	"github.com/relialabs/logtoku/internal/utils/logger"
)

type Params struct {
	TopK         int  // width of the top-k confidence selection and final aggregation
	ApplySoftmax bool // normalize rows into probabilities before selection
}

func DefaultParams() Params {
	return Params{
		TopK:         5,
		ApplySoftmax: false,
	}
}

type Pipeline struct {
	Params Params
}

type PipelineOption func(*Pipeline)

func WithTopK(topK int) PipelineOption {
	return func(p *Pipeline) {
		p.Params.TopK = topK
	}
}

func WithSoftmax(applySoftmax bool) PipelineOption {
	return func(p *Pipeline) {
		p.Params.ApplySoftmax = applySoftmax
	}
}

func WithParams(params Params) PipelineOption {
	return func(p *Pipeline) {
		p.Params = params
	}
}

func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		Params: DefaultParams(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Score runs the full pipeline over the per-step score vectors of one generated
// sequence and returns the intermediate estimates alongside the final scalar.
func (p *Pipeline) Score(steps StepScores) (SequenceEstimate, error) {
	logger.Sugar().Debugw("Scoring sequence", "params", p.Params, "tokens", len(steps))

	scores, err := ExtractScores(steps)
	if err != nil {
		return SequenceEstimate{}, err
	}

	confidences, err := TopKConfidence(scores, p.Params.ApplySoftmax, p.Params.TopK)
	if err != nil {
		return SequenceEstimate{}, err
	}

	epistemic := Epistemic(confidences)

	aleatoric, err := Aleatoric(confidences)
	if err != nil {
		return SequenceEstimate{}, err
	}

	reliability, err := AggregateReliability(epistemic, aleatoric, p.Params.TopK)
	if err != nil {
		return SequenceEstimate{}, err
	}

	return SequenceEstimate{
		Confidences: confidences,
		Epistemic:   epistemic,
		Aleatoric:   aleatoric,
		Reliability: reliability,
	}, nil
}

// ScoreBatch scores each sequence of a batch independently; rows are never mixed
// across sequences.
func (p *Pipeline) ScoreBatch(batch []StepScores) ([]SequenceEstimate, error) {
	estimates := make([]SequenceEstimate, len(batch))

	for seqIdx, steps := range batch {
		estimate, err := p.Score(steps)
		if err != nil {
			return nil, fmt.Errorf("sequence %d: %w", seqIdx, err)
		}
		estimates[seqIdx] = estimate
	}

	return estimates, nil
}
