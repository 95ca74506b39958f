// Package config loads LBC workspace configuration from .lbc/config.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete LBC configuration (v1 schema)
type Config struct {
	Version       int    `json:"version" mapstructure:"version"`
	WorkspaceRoot string `json:"workspaceRoot" mapstructure:"workspaceRoot"`

	Entry    EntryConfig    `json:"entry" mapstructure:"entry"`
	Platform PlatformConfig `json:"platform" mapstructure:"platform"`
	State    StateConfig    `json:"state" mapstructure:"state"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// EntryConfig names the default entry unit for bundle computation
type EntryConfig struct {
	// Unit is the entry unit's import identity or source identity.
	// The --entry flag overrides it.
	Unit string `json:"unit" mapstructure:"unit"`
}

// PlatformConfig describes the built-in/platform namespaces of the target
// module system
type PlatformConfig struct {
	// Schemes are import-identity prefixes treated as platform-provided
	Schemes []string `json:"schemes" mapstructure:"schemes"`

	// DeclarationFile is an optional platform.toml with additional
	// declarations, relative to the workspace root
	DeclarationFile string `json:"declarationFile" mapstructure:"declarationFile"`
}

// StateConfig controls where persisted bundle state lives
type StateConfig struct {
	// Dir is the state directory relative to the workspace root
	Dir string `json:"dir" mapstructure:"dir"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:       1,
		WorkspaceRoot: ".",
		Platform: PlatformConfig{
			Schemes: []string{"core:"},
		},
		State: StateConfig{
			Dir: ".lbc",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .lbc/config.json
func LoadConfig(workspaceRoot string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("version", 1)
	v.SetDefault("workspaceRoot", ".")
	v.SetDefault("platform.schemes", []string{"core:"})
	v.SetDefault("state.dir", ".lbc")
	v.SetDefault("logging.format", "human")
	v.SetDefault("logging.level", "info")

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(workspaceRoot, ".lbc"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to .lbc/config.json
func (c *Config) Save(workspaceRoot string) error {
	dir := filepath.Join(workspaceRoot, ".lbc")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.State.Dir == "" {
		return &ConfigError{Field: "state.dir", Message: "state directory must not be empty"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
