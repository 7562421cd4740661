package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all environment-based configuration for wanderplan-sync.
type Config struct {
	// Cloud endpoints (required).
	CloudBaseURL string `env:"WANDERPLAN_CLOUD_URL"`
	BlobBaseURL  string `env:"WANDERPLAN_BLOB_URL"`

	// Account identity. The mobile clients read these from the live auth
	// session; the CLI takes them from the environment.
	AccountID    string `env:"WANDERPLAN_ACCOUNT_ID"`
	AccountEmail string `env:"WANDERPLAN_ACCOUNT_EMAIL"`
	AuthToken    string `env:"WANDERPLAN_AUTH_TOKEN"`

	// Local database file. Defaults to ~/.wanderplan/wanderplan.db.
	DBPath string `env:"WANDERPLAN_DB_PATH"`

	// Sync state database file. Defaults to ~/.wanderplan/sync-state.db.
	StatePath string `env:"WANDERPLAN_STATE_PATH"`

	// Automatic sync preferences. Seeded into the sync state tracker on
	// first run; afterwards the tracker's persisted values win.
	AutoSync    bool `env:"WANDERPLAN_AUTO_SYNC" envDefault:"true"`
	SyncOnLogin bool `env:"WANDERPLAN_SYNC_ON_LOGIN" envDefault:"true"`

	// Environment controls log format.
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

// warnInsecureEnvFile checks whether the .env file (if present) has
// overly permissive permissions. On Unix systems, group or world
// readable files risk exposing the auth token to other users.
func warnInsecureEnvFile() {
	if runtime.GOOS == "windows" {
		return
	}

	info, err := os.Stat(".env")
	if err != nil {
		return // file does not exist, nothing to check
	}

	mode := info.Mode().Perm()
	if mode&0o077 != 0 {
		log.Printf("WARNING: .env file has insecure permissions %04o; recommended 0600", mode)
	}
}

// Load reads configuration from environment variables.
// It first attempts to load a .env file if present, then parses env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	warnInsecureEnvFile()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.DBPath == "" {
		p, err := defaultDataPath("wanderplan.db")
		if err != nil {
			return nil, err
		}

		cfg.DBPath = p
	}

	if cfg.StatePath == "" {
		p, err := defaultDataPath("sync-state.db")
		if err != nil {
			return nil, err
		}

		cfg.StatePath = p
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.CloudBaseURL == "" {
		return fmt.Errorf("WANDERPLAN_CLOUD_URL is required")
	}

	if c.BlobBaseURL == "" {
		return fmt.Errorf("WANDERPLAN_BLOB_URL is required")
	}

	return nil
}

// IsProduction returns true when the environment is set to production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// defaultDataPath returns ~/.wanderplan/<name>.
func defaultDataPath(name string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}

	return filepath.Join(home, ".wanderplan", name), nil
}
