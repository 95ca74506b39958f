package main

import (
	"github.com/spf13/cobra"

	"lbc/internal/config"
	"lbc/internal/logging"
	"lbc/internal/version"
)

var (
	// workspaceFlag is the CLI --workspace flag value
	workspaceFlag string
	// logLevelFlag overrides the configured log level
	logLevelFlag string
	// logJSONFlag switches log output to JSON
	logJSONFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "lbc",
	Short: "LBC - Library Bundle Compiler",
	Long: `LBC (Library Bundle Compiler) groups a program's libraries into output
bundles. Libraries on a mutual (cyclic) dependency are emitted as one
indivisible bundle because the target module format forbids circular
imports. Bundle assignments persist between builds so incremental passes
recompute only what changed.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("LBC version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&workspaceFlag, "workspace", ".",
		"Workspace root directory")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, or error (default from config)")
	rootCmd.PersistentFlags().BoolVar(&logJSONFlag, "log-json", false,
		"Emit logs as JSON")
}

// newLogger builds the logger from config and CLI overrides.
// Precedence: CLI flag > config file > info/human.
func newLogger(cfg *config.Config) *logging.Logger {
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	format := logging.Format(cfg.Logging.Format)
	if logJSONFlag {
		format = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{
		Format: format,
		Level:  logging.ParseLevel(level),
	})
}
