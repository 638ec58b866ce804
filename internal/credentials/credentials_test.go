package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fernet/fernet-go"

	"github.com/relialabs/logtoku/internal/config"
)

func writeEncryptedToken(t *testing.T, token string) (keyEnc, file string) {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("generate key: %v", err)
	}

	ciphertext, err := fernet.EncryptAndSign([]byte(token), &key)
	if err != nil {
		t.Fatalf("encrypt token: %v", err)
	}

	file = filepath.Join(t.TempDir(), "huggingface_key.bin")
	if err := os.WriteFile(file, ciphertext, 0o600); err != nil {
		t.Fatalf("write token file: %v", err)
	}

	return key.Encode(), file
}

func TestDecrypt_RoundTrip(t *testing.T) {
	keyEnc, file := writeEncryptedToken(t, "hf_test_token")
	t.Setenv("TEST_FERNET_KEY", keyEnc)

	cfg := &config.CredentialEnvConfig{
		DecryptionKeyEnvVar: "TEST_FERNET_KEY",
		EncryptedTokenFile:  file,
	}

	token, err := Decrypt(cfg)
	if err != nil {
		t.Fatalf("unexpected decrypt error: %v", err)
	}
	if token != "hf_test_token" {
		t.Fatalf("unexpected token: %q", token)
	}
}

func TestDecrypt_MissingEnv(t *testing.T) {
	cfg := &config.CredentialEnvConfig{
		DecryptionKeyEnvVar: "TEST_FERNET_KEY_UNSET",
		EncryptedTokenFile:  "huggingface_key.bin",
	}

	if _, err := Decrypt(cfg); err == nil {
		t.Fatal("expected error when key env var is unset")
	}
}

func TestDecrypt_MissingFile(t *testing.T) {
	keyEnc, _ := writeEncryptedToken(t, "hf_test_token")
	t.Setenv("TEST_FERNET_KEY", keyEnc)

	cfg := &config.CredentialEnvConfig{
		DecryptionKeyEnvVar: "TEST_FERNET_KEY",
		EncryptedTokenFile:  filepath.Join(t.TempDir(), "does_not_exist.bin"),
	}

	if _, err := Decrypt(cfg); err == nil {
		t.Fatal("expected error when token file is missing")
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	_, file := writeEncryptedToken(t, "hf_test_token")

	var otherKey fernet.Key
	if err := otherKey.Generate(); err != nil {
		t.Fatalf("generate key: %v", err)
	}
	t.Setenv("TEST_FERNET_KEY", otherKey.Encode())

	cfg := &config.CredentialEnvConfig{
		DecryptionKeyEnvVar: "TEST_FERNET_KEY",
		EncryptedTokenFile:  file,
	}

	if _, err := Decrypt(cfg); err == nil {
		t.Fatal("expected error when decrypting with the wrong key")
	}
}

func TestDecrypt_NilConfig(t *testing.T) {
	if _, err := Decrypt(nil); err == nil {
		t.Fatal("expected error when cfg is nil")
	}
}
