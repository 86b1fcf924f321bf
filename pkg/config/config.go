// Package config loads application configuration by merging a config
// file, environment variables, and defaults through viper.
// Priority: explicit file value > environment > default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Provider string `mapstructure:"provider"` // "openai" or "anthropic"
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`

	// ModelOverride pins both tiers to one model; empty uses the
	// per-complexity table.
	ModelOverride string `mapstructure:"model"`
	Experimental  bool   `mapstructure:"experimental"`

	// Loop tunables. Optimal values are workload-dependent.
	MaxIterations       int `mapstructure:"max_iterations"`
	CheckpointInterval  int `mapstructure:"checkpoint_interval"`
	ExplorationFloor    int `mapstructure:"exploration_floor"`
	ZeroDirectiveStreak int `mapstructure:"zero_directive_streak"`
}

// homeDir returns the tandem config directory, honoring TANDEM_HOME.
func homeDir() (string, error) {
	if home := os.Getenv("TANDEM_HOME"); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tandem"), nil
}

// Load reads configuration from ~/.tandem/config.yaml (if present),
// TANDEM_* environment variables, and defaults. Returns an error when
// no API key can be resolved for the selected provider.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("provider", "openai")
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", "")
	v.SetDefault("model", "")
	v.SetDefault("experimental", false)
	v.SetDefault("max_iterations", 24)
	v.SetDefault("checkpoint_interval", 3)
	v.SetDefault("exploration_floor", 2)
	v.SetDefault("zero_directive_streak", 2)

	v.SetEnvPrefix("TANDEM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	dir, err := homeDir()
	if err != nil {
		return nil, err
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		if !isConfigNotFound(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.APIKey == "" {
		cfg.APIKey = providerKeyFromEnv(cfg.Provider)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key: set api_key in %s/config.yaml or the provider environment variable", dir)
	}

	if cfg.MaxIterations < 1 {
		return nil, fmt.Errorf("max_iterations must be at least 1, got %d", cfg.MaxIterations)
	}
	if cfg.CheckpointInterval < 1 {
		return nil, fmt.Errorf("checkpoint_interval must be at least 1, got %d", cfg.CheckpointInterval)
	}

	return &cfg, nil
}

// providerKeyFromEnv falls back to the provider SDK's conventional
// environment variable.
func providerKeyFromEnv(provider string) string {
	switch provider {
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

// isConfigNotFound reports whether err means the config file is simply
// absent, which is not an error: defaults and environment apply.
func isConfigNotFound(err error) bool {
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return true
	}
	// A missing directory surfaces as a path error; treat it the same.
	return os.IsNotExist(err)
}
