package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// cloudOverrideFile is the locally persisted connection override, written
// from the admin settings page. It takes precedence over the environment.
const cloudOverrideFile = "cloud_config.json"

// CloudParams are the connection parameters for the remote Supabase backend.
type CloudParams struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type cloudEnv struct {
	URL string `env:"SUPABASE_URL"`
	Key string `env:"SUPABASE_ANON_KEY"`
}

// ResolveCloud determines the remote connection parameters, first non-empty
// source wins: the persisted override, then the environment. A nil result is
// the normal "no cloud configured" state, not an error; the application then
// runs against the local fallback store.
func ResolveCloud(dataDir string) *CloudParams {
	if override := CloudOverride(dataDir); override != nil {
		return override
	}

	var ce cloudEnv
	// Absence of credentials must never abort startup.
	if err := env.Parse(&ce); err == nil && ce.URL != "" && ce.Key != "" {
		return &CloudParams{URL: ce.URL, Key: ce.Key}
	}
	return nil
}

// CloudOverride reads the persisted override, or nil if none exists or it is
// unreadable.
func CloudOverride(dataDir string) *CloudParams {
	raw, err := os.ReadFile(filepath.Join(dataDir, cloudOverrideFile))
	if err != nil {
		return nil
	}
	var p CloudParams
	if err := json.Unmarshal(raw, &p); err != nil || p.URL == "" || p.Key == "" {
		return nil
	}
	return &p
}

// SaveCloudOverride persists the override for future startups. Callers are
// expected to reinitialize the remote client afterwards.
func SaveCloudOverride(dataDir string, p CloudParams) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode cloud config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, cloudOverrideFile), raw, 0o600); err != nil {
		return fmt.Errorf("write cloud config: %w", err)
	}
	return nil
}
