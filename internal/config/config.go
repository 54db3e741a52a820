// Package config provides configuration management for the Simply CLI.
// Settings come from SIMPLY_* environment variables, optionally seeded from a
// .env file in the working directory.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// DefaultAPIURL is the default Simply API endpoint
	DefaultAPIURL = "https://api.paysur.com/api/app"

	// DefaultKeyringService is the keychain namespace for stored credentials
	DefaultKeyringService = "com.paysur.simply"

	// DataDirName is the name of the data directory under the user's home
	DataDirName = ".simply"

	// PreferencesFileName is the name of the non-sensitive preferences database
	PreferencesFileName = "preferences.db"
)

// Config holds all environment-based configuration for the CLI.
type Config struct {
	// APIURL is the base URL of the Simply API, including the /api/app prefix
	APIURL string `env:"SIMPLY_API_URL" envDefault:"https://api.paysur.com/api/app"`

	// RequestTimeout bounds every outbound request
	RequestTimeout time.Duration `env:"SIMPLY_REQUEST_TIMEOUT" envDefault:"30s"`

	// KeyringService namespaces the access and refresh token entries
	KeyringService string `env:"SIMPLY_KEYRING_SERVICE" envDefault:"com.paysur.simply"`

	// DataDir holds the preferences database. Defaults to ~/.simply.
	DataDir string `env:"SIMPLY_DATA_DIR"`

	// Environment controls log encoding
	Environment string `env:"SIMPLY_ENV" envDefault:"development"`
	LogLevel    string `env:"SIMPLY_LOG_LEVEL" envDefault:"warn"`

	// MetricsFile, when set, receives a prometheus textfile dump on exit.
	MetricsFile string `env:"SIMPLY_METRICS_FILE"`

	KYCPollInterval time.Duration `env:"SIMPLY_KYC_POLL_INTERVAL" envDefault:"5s"`
	KYCTimeout      time.Duration `env:"SIMPLY_KYC_TIMEOUT" envDefault:"10m"`

	SupportURL string `env:"SIMPLY_SUPPORT_URL" envDefault:"https://simply.paysur.com/ayuda"`
}

// Load reads configuration from environment variables.
// A .env file is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("SIMPLY_API_URL must not be empty")
	}

	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("SIMPLY_API_URL must be an absolute http(s) URL, got %q", c.APIURL)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("SIMPLY_REQUEST_TIMEOUT must be positive")
	}

	if c.KeyringService == "" {
		return fmt.Errorf("SIMPLY_KEYRING_SERVICE must not be empty")
	}

	if c.KYCPollInterval <= 0 || c.KYCTimeout <= 0 {
		return fmt.Errorf("SIMPLY_KYC_POLL_INTERVAL and SIMPLY_KYC_TIMEOUT must be positive")
	}

	return nil
}

// DefaultDataDir returns ~/.simply.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}

	return filepath.Join(home, DataDirName), nil
}

// PreferencesPath returns the location of the preferences database.
func (c *Config) PreferencesPath() string {
	return filepath.Join(c.DataDir, PreferencesFileName)
}

// IsProduction returns true when the environment is set to production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
