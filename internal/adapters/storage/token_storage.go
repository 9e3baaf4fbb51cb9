// Package storage persists small client-side artifacts under the XDG data
// directory.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opticode-ai/opticode/internal/util"
)

// TokenStorage keeps the bearer token obtained by login on disk so every
// command does not have to re-authenticate.
type TokenStorage struct {
	path string
}

// NewTokenStorage ensures the data directory exists and returns the store.
func NewTokenStorage() (*TokenStorage, error) {
	baseDir, err := util.DataDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &TokenStorage{path: filepath.Join(baseDir, "token")}, nil
}

// Save writes the token, readable by the owner only.
func (s *TokenStorage) Save(token string) error {
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}

// Load returns the stored token, or "" when none is saved.
func (s *TokenStorage) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Clear removes the stored token.
func (s *TokenStorage) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
