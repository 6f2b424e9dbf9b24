package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Database DatabaseConfig `toml:"database"`
	UI       UIConfig       `toml:"ui"`
}

// APIConfig contains backend connection settings.
type APIConfig struct {
	BaseURL    string `toml:"base_url"`    // backend origin; empty targets the local development server
	LandingURL string `toml:"landing_url"` // page opened after a successful login
}

// DatabaseConfig contains local store settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// UIConfig contains display settings.
type UIConfig struct {
	Currency string `toml:"currency"`
}

// LoadConfig reads and parses a TOML configuration file from the specified
// path, then applies VIDEOTEKA_* environment overrides (a .env file in the
// working directory is honored when present).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingConfig, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	config.applyEnv()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the
// embedded example config, with environment overrides applied.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyEnv()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv overlays VIDEOTEKA_* environment variables. Load errors from
// godotenv are ignored: a missing .env file is the normal case.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("VIDEOTEKA_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("VIDEOTEKA_LANDING_URL"); v != "" {
		c.API.LandingURL = v
	}
	if v := os.Getenv("VIDEOTEKA_DB_PATH"); v != "" {
		c.Database.Path = v
	}
}
