// Package credential stores account passwords in the system keyring.
// The generated configuration refers back to these entries through
// `mailgen secret get`.
package credential

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/99designs/keyring"
)

// Config controls which keyring service secrets live under. The zero
// value uses the standard mailgen service with the file backend
// falling back to ~/.config/mailgen/credentials.
type Config struct {
	// Service is the keyring service name.
	Service string

	// FileDir is where the file backend keeps its entries when no
	// native keyring is available.
	FileDir string

	// Backends restricts which keyring backends may be used. Empty
	// means every supported native backend plus the file fallback.
	Backends []keyring.BackendType
}

func (c Config) withDefaults() Config {
	if c.Service == "" {
		c.Service = "mailgen"
	}
	if c.FileDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.FileDir = filepath.Join(home, ".config", "mailgen", "credentials")
	}
	if len(c.Backends) == 0 {
		c.Backends = []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		}
	}
	return c
}

// Store provides access to the secrets of one keyring service.
type Store struct {
	ring keyring.Keyring
}

// Open connects to the keyring described by cfg.
func Open(cfg Config) (*Store, error) {
	cfg = cfg.withDefaults()

	ring, err := keyring.Open(keyring.Config{
		ServiceName:              cfg.Service,
		AllowedBackends:          cfg.Backends,
		FileDir:                  cfg.FileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt(cfg.Service + "-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring service %q: %w", cfg.Service, err)
	}

	return &Store{ring: ring}, nil
}

// Get retrieves a secret by key.
func (s *Store) Get(key string) (string, error) {
	item, err := s.ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting secret %q: %w", key, err)
	}
	return string(item.Data), nil
}

// Set stores a secret under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	err := s.ring.Set(keyring.Item{
		Key:  key,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting secret %q: %w", key, err)
	}
	return nil
}

// Delete removes the secret stored under key.
func (s *Store) Delete(key string) error {
	if err := s.ring.Remove(key); err != nil {
		return fmt.Errorf("deleting secret %q: %w", key, err)
	}
	return nil
}
