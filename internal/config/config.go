package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// Config holds the process-wide application settings, resolved once at
// startup from the environment.
type Config struct {
	Port    string `env:"PORT" envDefault:"8585"`
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	// AdminID and AdminPasswordHash are the single static admin credential.
	// If no bcrypt hash is supplied, AdminPassword is hashed at startup so
	// login always goes through a bcrypt compare.
	AdminID           string `env:"ADMIN_ID" envDefault:"gsj6600"`
	AdminPassword     string `env:"ADMIN_PASSWORD" envDefault:"6600"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	CookieDomain string `env:"COOKIE_DOMAIN"`
	CookieSecure bool   `env:"COOKIE_SECURE"`

	SessionKey []byte `env:"-"`
	CSRFKey    []byte `env:"-"`
}

// Load parses the environment into a Config and resolves the secret keys.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.SessionKey = keyFromEnv("SESSION_KEY")
	cfg.CSRFKey = keyFromEnv("CSRF_KEY")

	if cfg.AdminPasswordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		cfg.AdminPasswordHash = string(hash)
		slog.Warn("ADMIN_PASSWORD_HASH not set, hashed ADMIN_PASSWORD at startup. Set ADMIN_PASSWORD_HASH in production.")
	}

	return cfg, nil
}

// keyFromEnv decodes a base64 key from the environment, falling back to a
// random key (with a warning) so development works without setup. Random keys
// invalidate sessions on every restart.
func keyFromEnv(name string) []byte {
	raw := os.Getenv(name)
	if raw == "" {
		slog.Warn("secret key not set, generating a random one. Sessions will not survive restarts.", "key", name)
		return randomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn("secret key invalid or shorter than 32 bytes, generating a random one", "key", name)
		return randomBytes(32)
	}
	return decoded
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is unrecoverable for key material.
		panic(fmt.Sprintf("read random bytes: %v", err))
	}
	return b
}
