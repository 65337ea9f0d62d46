// Package session persists the device-local admin login flag. It is a plain
// file-backed accessor: no expiry, no refresh, and no tie to whether the
// cloud store is connected. State lives until explicitly cleared.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Param028/geet-fashion/internal/models"
)

const authFile = "auth.json"

// Store reads and writes the AdminAuth blob under the data directory.
type Store struct {
	mu   sync.Mutex
	path string
}

func New(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, authFile)}
}

// Get returns the stored auth state, or nil when nobody is logged in.
func (s *Store) Get() *models.AdminAuth {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var auth models.AdminAuth
	if err := json.Unmarshal(raw, &auth); err != nil {
		return nil
	}
	return &auth
}

// Set persists the auth state.
func (s *Store) Set(auth models.AdminAuth) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	raw, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("encode auth: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write auth: %w", err)
	}
	return nil
}

// Clear removes the auth state. Clearing an already-clear store is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear auth: %w", err)
	}
	return nil
}
