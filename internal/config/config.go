// Package config defines environment configuration structs and loaders.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type AppConfig struct {
	ServerEnvConfig
	GenerationEnvConfig
	CredentialEnvConfig
	ScoringEnvConfig
}

func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ServerEnvConfig configures the scoring HTTP server.
type ServerEnvConfig struct {
	Address       string `env:"SCORER_ADDRESS" envDefault:":8080"`
	BodySizeLimit int    `env:"SCORER_BODY_LIMIT" envDefault:"16777216"`
}

// GenerationEnvConfig configures access to the external generation subsystem.
type GenerationEnvConfig struct {
	GenerationAPIUrl string        `env:"GENERATION_API_URL" envDefault:"http://127.0.0.1:8081"`
	ClientTimeout    time.Duration `env:"GENERATION_CLIENT_TIMEOUT" envDefault:"120s"`
	RetryMax         int           `env:"GENERATION_RETRY_MAX" envDefault:"5"`
}

// CredentialEnvConfig configures decryption of the stored model-hub access token.
// DecryptionKeyEnvVar names the variable that holds the symmetric key, not the key
// itself.
type CredentialEnvConfig struct {
	DecryptionKeyEnvVar string `env:"FERNET_DECRYPTION_KEY_ENV_VAR" envDefault:"FERNET_DECRYPTION_KEY"`
	EncryptedTokenFile  string `env:"ENCRYPTED_TOKEN_FILE" envDefault:"huggingface_key.bin"`
}

// ScoringEnvConfig configures the uncertainty pipeline defaults.
type ScoringEnvConfig struct {
	TopKInconfident int  `env:"TOP_K_INCONFIDENT" envDefault:"5"`
	ApplySoftmax    bool `env:"APPLY_SOFTMAX" envDefault:"false"`
}
