package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Storage StorageConfig `json:"storage"`
	Display DisplayConfig `json:"display"`
	Athlete AthleteConfig `json:"athlete"`
}

// StorageConfig selects the durable key/value backend
type StorageConfig struct {
	Backend string `json:"backend"` // "sqlite", "bolt" or "memory"
	Path    string `json:"path"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	Units string `json:"units"` // "metric" or "imperial"
}

// AthleteConfig holds athlete-specific settings
type AthleteConfig struct {
	WeightKg float64 `json:"weight_kg"`
}

// Known storage backends
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
		},
		Display: DisplayConfig{
			Units: "metric",
		},
		Athlete: AthleteConfig{
			WeightKg: 70,
		},
	}
}

// Load reads the configuration from ~/.fittrack/config.json, applies
// defaults for missing values and environment overrides on top.
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = defaults.Storage.Backend
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path, err = defaultDataPath()
		if err != nil {
			return nil, err
		}
	}
	if cfg.Display.Units == "" {
		cfg.Display.Units = defaults.Display.Units
	}
	if cfg.Athlete.WeightKg == 0 {
		cfg.Athlete.WeightKg = defaults.Athlete.WeightKg
	}

	applyEnv(&cfg)

	return &cfg, nil
}

// applyEnv overlays FITTRACK_* environment variables, loading a .env file
// from the working directory first when one exists.
func applyEnv(cfg *Config) {
	_ = godotenv.Load() // a missing .env file is not an error

	if v := os.Getenv("FITTRACK_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("FITTRACK_DATA_DIR"); v != "" {
		cfg.Storage.Path = filepath.Join(v, "data.db")
	}
}

// Save writes the configuration to ~/.fittrack/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Storage.Path, err = defaultDataPath()
	if err != nil {
		return err
	}

	return Save(&example)
}

// Validate checks if the config has usable values
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "", BackendSQLite, BackendBolt, BackendMemory:
	default:
		return fmt.Errorf("storage.backend must be %q, %q or %q, got %q",
			BackendSQLite, BackendBolt, BackendMemory, c.Storage.Backend)
	}

	if c.Display.Units != "" && c.Display.Units != "metric" && c.Display.Units != "imperial" {
		return fmt.Errorf("display.units must be \"metric\" or \"imperial\", got %q", c.Display.Units)
	}

	if c.Athlete.WeightKg < 0 {
		return fmt.Errorf("athlete.weight_kg must not be negative, got %v", c.Athlete.WeightKg)
	}

	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".fittrack", "config.json"), nil
}

// defaultDataPath returns the default database location
func defaultDataPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".fittrack", "data.db"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".fittrack"), nil
}
