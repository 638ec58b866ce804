// Package scoreapi exposes the uncertainty pipeline over HTTP.
package scoreapi

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/relialabs/logtoku/internal/config"
	"github.com/relialabs/logtoku/internal/generation"
	"github.com/relialabs/logtoku/internal/uncertainty"
)

type Config struct {
	Address       string
	BodySizeLimit int
	Defaults      uncertainty.Params
}

func NewConfig(cfg *config.AppConfig) Config {
	return Config{
		Address:       cfg.ServerEnvConfig.Address,
		BodySizeLimit: cfg.ServerEnvConfig.BodySizeLimit,
		Defaults: uncertainty.Params{
			TopK:         cfg.ScoringEnvConfig.TopKInconfident,
			ApplySoftmax: cfg.ScoringEnvConfig.ApplySoftmax,
		},
	}
}

type Server struct {
	app       *fiber.App
	cfg       Config
	generator generation.GenerationInterface
}

// NewServer builds the scoring HTTP server. generator may be nil when the service
// runs in score-only mode.
func NewServer(cfg Config, generator generation.GenerationInterface) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.BodySizeLimit,
	})

	app.Use(ZstdMiddleware())

	s := &Server{app: app, cfg: cfg, generator: generator}
	app.Get("/healthz", s.handleHealth)
	app.Post("/api/v1/score", s.handleScore)
	app.Post("/api/v1/score/batch", s.handleScoreBatch)
	app.Post("/api/v1/generate", s.handleGenerateScore)
	return s
}

func (s *Server) pipeline(applySoftmax *bool, topK *int) *uncertainty.Pipeline {
	params := s.cfg.Defaults
	if applySoftmax != nil {
		params.ApplySoftmax = *applySoftmax
	}
	if topK != nil {
		params.TopK = *topK
	}
	return uncertainty.NewPipeline(uncertainty.WithParams(params))
}

// pipelineStatus maps numeric-precondition failures to 422; anything else is a 500.
func pipelineStatus(err error) int {
	switch {
	case errors.Is(err, uncertainty.ErrEmptyGeneration),
		errors.Is(err, uncertainty.ErrRaggedScores),
		errors.Is(err, uncertainty.ErrInvalidTopK),
		errors.Is(err, uncertainty.ErrDegenerateDistribution),
		errors.Is(err, uncertainty.ErrInsufficientTokens):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func (s *Server) handleHealth(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(HealthResponse{Status: "ok"})
}

func (s *Server) handleScore(c fiber.Ctx) error {
	var req ScoreRequest
	if err := sonic.Unmarshal(c.Body(), &req); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal score request")
		return c.Status(fiber.StatusBadRequest).JSON(ScoreResponse{Status: "error", Message: "invalid payload"})
	}

	estimate, err := s.pipeline(req.ApplySoftmax, req.TopK).Score(req.Scores)
	if err != nil {
		log.Error().Err(err).Int("tokens", len(req.Scores)).Msg("scoring failed")
		return c.Status(pipelineStatus(err)).JSON(ScoreResponse{Status: "error", Message: err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(ScoreResponse{
		Status:      "ok",
		Reliability: estimate.Reliability,
		Epistemic:   estimate.Epistemic,
		Aleatoric:   estimate.Aleatoric,
	})
}

func (s *Server) handleScoreBatch(c fiber.Ctx) error {
	var req BatchScoreRequest
	if err := sonic.Unmarshal(c.Body(), &req); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal batch score request")
		return c.Status(fiber.StatusBadRequest).JSON(BatchScoreResponse{Status: "error", Message: "invalid payload"})
	}

	batch := make([]uncertainty.StepScores, len(req.Sequences))
	for i, seq := range req.Sequences {
		batch[i] = seq
	}

	estimates, err := s.pipeline(req.ApplySoftmax, req.TopK).ScoreBatch(batch)
	if err != nil {
		log.Error().Err(err).Int("sequences", len(batch)).Msg("batch scoring failed")
		return c.Status(pipelineStatus(err)).JSON(BatchScoreResponse{Status: "error", Message: err.Error()})
	}

	reliabilities := make([]float64, len(estimates))
	for i, estimate := range estimates {
		reliabilities[i] = estimate.Reliability
	}

	return c.Status(fiber.StatusOK).JSON(BatchScoreResponse{Status: "ok", Reliabilities: reliabilities})
}

func (s *Server) handleGenerateScore(c fiber.Ctx) error {
	if s.generator == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(GenerateScoreResponse{Status: "error", Message: "generation subsystem not configured"})
	}

	var req GenerateScoreRequest
	if err := sonic.Unmarshal(c.Body(), &req); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal generate request")
		return c.Status(fiber.StatusBadRequest).JSON(GenerateScoreResponse{Status: "error", Message: "invalid payload"})
	}

	gen, err := s.generator.Generate(generation.GenerateRequest{
		Prompt:       req.Prompt,
		MaxNewTokens: req.MaxNewTokens,
	})
	if err != nil {
		log.Error().Err(err).Msg("generation failed")
		return c.Status(fiber.StatusBadGateway).JSON(GenerateScoreResponse{Status: "error", Message: err.Error()})
	}

	estimate, err := s.pipeline(req.ApplySoftmax, req.TopK).Score(gen.Scores)
	if err != nil {
		log.Error().Err(err).Int("tokens", len(gen.Scores)).Msg("scoring generated sequence failed")
		return c.Status(pipelineStatus(err)).JSON(GenerateScoreResponse{Status: "error", Message: err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(GenerateScoreResponse{
		Status:      "ok",
		Text:        gen.Text,
		Reliability: estimate.Reliability,
	})
}

func (s *Server) Start(ctx context.Context) error {
	go func() {
		if err := s.app.Listen(s.cfg.Address); err != nil {
			log.Error().Err(err).Msg("server listen failed")
		}
	}()
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown()
}
