// Package session owns the bearer-token lifecycle for the app.
// The token is persisted in ~/.config/dripadvisor/session.toml and mirrored
// in memory so the API client can read it on every request. All screens go
// through this store; none keep their own copy of the credential.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultSessionPath = "~/.config/dripadvisor/session.toml"

// DefaultPath returns the default session file path.
func DefaultPath() string {
	return defaultSessionPath
}

// Store holds the current bearer token. Reads are frequent (every
// authenticated request); writes happen only at login, registration, logout
// and session expiry.
type Store struct {
	mu    sync.RWMutex
	path  string
	token string
}

type sessionFile struct {
	AccessToken string `toml:"access_token"`
}

// Open loads any persisted session from the given path. A missing file means
// no session. The returned store is usable even when err is non-nil; the
// error exists so callers can log the degraded state.
func Open(path string) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return &Store{path: path}, fmt.Errorf("resolve session path: %w", err)
	}

	s := &Store{path: resolved}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("read session: %w", err)
	}

	var file sessionFile
	if err := toml.Unmarshal(bytes, &file); err != nil {
		return s, fmt.Errorf("parse session: %w", err)
	}

	s.token = strings.TrimSpace(file.AccessToken)
	return s, nil
}

// Token returns the current bearer token, or "" when no session is present.
// Implements advisor.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Active reports whether a session is present.
func (s *Store) Active() bool {
	return s.Token() != ""
}

// Set stores the token in memory and persists it. On a write failure the
// in-memory token is kept so the running session still works; the error is
// returned for the caller to surface.
func (s *Store) Set(token string) error {
	s.mu.Lock()
	s.token = strings.TrimSpace(token)
	path := s.path
	current := s.token
	s.mu.Unlock()

	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	bytes, err := toml.Marshal(sessionFile{AccessToken: current})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	// The file holds a live credential.
	if err := os.WriteFile(path, bytes, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear discards the token and removes the persisted file.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.token = ""
	path := s.path
	s.mu.Unlock()

	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultSessionPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
