package credentials

import (
	"errors"
	"fmt"
	"os"

	"github.com/99designs/keyring"

	"github.com/mattercrypt/mattercrypt/internal/configs"
	mcerrors "github.com/mattercrypt/mattercrypt/internal/errors"
)

const (
	// ServiceName identifies mattercrypt entries in the OS keyring.
	ServiceName = "mattercrypt"

	// BackendEnvVar selects the keyring backend. Supported values:
	// auto|file|keychain|wincred|secret-service|pass.
	BackendEnvVar = "MATTERCRYPT_KEYRING_BACKEND"

	// PasswordEnvVar provides the file-backend password for non-interactive
	// environments.
	PasswordEnvVar = "MATTERCRYPT_KEYRING_PASSWORD" // #nosec G101 -- environment variable name
)

// Store abstracts the secure-storage facility holding the account password,
// keyed by the login username. Implementations must return
// errors.ErrSecretNotFound for absent entries and errors.ErrStoreUnavailable
// when no backend can be opened.
type Store interface {
	Get(account string) (string, error)
	Set(account, secret string) error
}

// KeyringStore stores secrets in the OS keyring via 99designs/keyring.
// The zero value is usable; the keyring is opened lazily on first access.
type KeyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore returns a Store backed by the platform keyring.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (s *KeyringStore) open() (keyring.Keyring, error) {
	if s.ring != nil {
		return s.ring, nil
	}

	cfg := keyring.Config{
		ServiceName:              ServiceName,
		KeychainTrustApplication: true,
		FileDir:                  configs.UserMattercryptSettings.UserKeyringPath,
		FilePasswordFunc:         filePasswordFunc(),
	}

	switch os.Getenv(BackendEnvVar) {
	case "", "auto":
		// Let the library pick the best available backend.
	case "file":
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	case "keychain":
		cfg.AllowedBackends = []keyring.BackendType{keyring.KeychainBackend}
	case "wincred":
		cfg.AllowedBackends = []keyring.BackendType{keyring.WinCredBackend}
	case "secret-service":
		cfg.AllowedBackends = []keyring.BackendType{keyring.SecretServiceBackend}
	case "pass":
		cfg.AllowedBackends = []keyring.BackendType{keyring.PassBackend}
	default:
		return nil, fmt.Errorf("%w: unknown backend %q in %s",
			mcerrors.ErrStoreUnavailable, os.Getenv(BackendEnvVar), BackendEnvVar)
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mcerrors.ErrStoreUnavailable, err)
	}

	s.ring = ring
	return ring, nil
}

// Get retrieves the secret for the given account.
func (s *KeyringStore) Get(account string) (string, error) {
	ring, err := s.open()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(account)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", mcerrors.ErrSecretNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read secret from keyring: %w", err)
	}

	return string(item.Data), nil
}

// Set creates or overwrites the secret for the given account.
func (s *KeyringStore) Set(account, secret string) error {
	ring, err := s.open()
	if err != nil {
		return err
	}

	item := keyring.Item{
		Key:         account,
		Data:        []byte(secret),
		Label:       ServiceName + ": " + account,
		Description: "Mattermost account password",
	}
	if err := ring.Set(item); err != nil {
		return fmt.Errorf("failed to write secret to keyring: %w", err)
	}

	return nil
}

func filePasswordFunc() keyring.PromptFunc {
	if password := os.Getenv(PasswordEnvVar); password != "" {
		return keyring.FixedStringPrompt(password)
	}
	return keyring.TerminalPrompt
}
