package main

import (
	"github.com/rs/zerolog/log"

	"github.com/relialabs/logtoku/internal/uncertainty"
	"github.com/relialabs/logtoku/internal/utils/logger"
)

func main() {
	logger.Init()

	testConfidentSequence()
	testAmbiguousSequence()
	testBatch()
}

func testConfidentSequence() {
	log.Info().Msg("--- Scoring a confidently generated sequence ---")
	steps := uncertainty.StepScores{
		{12, 1, 0.5, 0.2, 0.1},
		{15, 0.8, 0.3, 0.2, 0.1},
		{11, 2, 1, 0.4, 0.2},
	}

	pipeline := uncertainty.NewPipeline(uncertainty.WithTopK(2))
	estimate, err := pipeline.Score(steps)
	if err != nil {
		log.Fatal().Err(err).Msg("scoring failed")
	}
	log.Info().
		Float64("epistemic", estimate.Epistemic).
		Floats64("aleatoric", estimate.Aleatoric).
		Float64("reliability", estimate.Reliability).
		Msg("confident sequence scored")
}

func testAmbiguousSequence() {
	log.Info().Msg("--- Scoring an ambiguous sequence ---")
	steps := uncertainty.StepScores{
		{3, 3, 3, 3, 3},
		{2, 2, 2, 2, 2},
		{1, 1, 1, 1, 1},
	}

	pipeline := uncertainty.NewPipeline(uncertainty.WithTopK(2))
	estimate, err := pipeline.Score(steps)
	if err != nil {
		log.Fatal().Err(err).Msg("scoring failed")
	}
	log.Info().
		Float64("epistemic", estimate.Epistemic).
		Floats64("aleatoric", estimate.Aleatoric).
		Float64("reliability", estimate.Reliability).
		Msg("ambiguous sequence scored")
}

func testBatch() {
	log.Info().Msg("--- Scoring a batch with softmax normalization ---")
	batch := []uncertainty.StepScores{
		{
			{5, 4, 1, 0, 0},
			{3, 3, 3, 1, 0},
			{9, 1, 0, 0, 0},
		},
		{
			{0.5, 0.4, 0.3, 0.2, 0.1},
			{0.9, 0.1, 0.1, 0.1, 0.1},
			{2, 1.9, 1.8, 0.5, 0.1},
		},
	}

	pipeline := uncertainty.NewPipeline(uncertainty.WithTopK(3), uncertainty.WithSoftmax(true))
	estimates, err := pipeline.ScoreBatch(batch)
	if err != nil {
		log.Fatal().Err(err).Msg("batch scoring failed")
	}
	for i, estimate := range estimates {
		log.Info().Int("sequence", i).Float64("reliability", estimate.Reliability).Msg("sequence scored")
	}
}
