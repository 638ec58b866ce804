// Package credentials decrypts the stored model-hub access token used to
// authenticate against the external generation subsystem.
package credentials

import (
	"fmt"
	"os"

	"github.com/fernet/fernet-go"
	"github.com/rs/zerolog/log"

	"github.com/relialabs/logtoku/internal/config"
)

// Decrypt reads the symmetric key from the environment variable named by the
// configuration and the Fernet ciphertext from the configured file, and returns the
// decrypted token. It is meant to run once at process startup; the entrypoint decides
// whether a failure is fatal.
func Decrypt(cfg *config.CredentialEnvConfig) (string, error) {
	if cfg == nil {
		return "", fmt.Errorf("configuration cannot be nil")
	}

	rawKey := os.Getenv(cfg.DecryptionKeyEnvVar)
	if rawKey == "" {
		return "", fmt.Errorf("environment variable %s not set", cfg.DecryptionKeyEnvVar)
	}

	key, err := fernet.DecodeKey(rawKey)
	if err != nil {
		return "", fmt.Errorf("decode key from %s: %w", cfg.DecryptionKeyEnvVar, err)
	}

	ciphertext, err := os.ReadFile(cfg.EncryptedTokenFile)
	if err != nil {
		return "", fmt.Errorf("read encrypted token file %s: %w", cfg.EncryptedTokenFile, err)
	}

	token := fernet.VerifyAndDecrypt(ciphertext, 0, []*fernet.Key{key})
	if token == nil {
		return "", fmt.Errorf("decrypt token from %s: incorrect key or corrupted file", cfg.EncryptedTokenFile)
	}

	log.Info().Str("file", cfg.EncryptedTokenFile).Msg("model-hub token decrypted")
	return string(token), nil
}
