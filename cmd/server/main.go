package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/relialabs/logtoku/internal/config"
	"github.com/relialabs/logtoku/internal/credentials"
	"github.com/relialabs/logtoku/internal/generation"
	"github.com/relialabs/logtoku/internal/scoreapi"
	"github.com/relialabs/logtoku/internal/utils/logger"
)

func main() {
	logger.Init()
	log.Info().Msg("Starting reliability scorer...")

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env not loaded; continuing with existing environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment configuration")
	}

	token, err := credentials.Decrypt(&cfg.CredentialEnvConfig)
	if err != nil {
		log.Fatal().Err(err).
			Str("key_env_var", cfg.DecryptionKeyEnvVar).
			Str("token_file", cfg.EncryptedTokenFile).
			Msgf("cannot proceed without the model-hub token; export %s and provide the encrypted token file", cfg.DecryptionKeyEnvVar)
	}

	generator, err := generation.NewClient(&cfg.GenerationEnvConfig, token)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init generation client")
	}

	srv := scoreapi.NewServer(scoreapi.NewConfig(cfg), generator)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("address", cfg.ServerEnvConfig.Address).Msg("scorer listening")
	if err := srv.Start(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown returned error")
	}
	log.Info().Msg("scorer stopped")
}
