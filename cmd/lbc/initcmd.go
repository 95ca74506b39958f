package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lbc/internal/config"
)

var (
	initEntry   string
	initSchemes []string
	initForce   bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default .lbc/config.json in the workspace",
	Long: `Writes the default LBC configuration into the workspace. Refuses to
overwrite an existing config unless --force is given.

Examples:
  lbc init
  lbc init --entry app/main --scheme core: --scheme host:`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initEntry, "entry", "", "Default entry unit to record in the config")
	initCmd.Flags().StringArrayVar(&initSchemes, "scheme", nil, "Platform namespace prefix (repeatable)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := filepath.Join(workspaceFlag, ".lbc", "config.json")
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	cfg := config.DefaultConfig()
	if initEntry != "" {
		cfg.Entry.Unit = initEntry
	}
	if len(initSchemes) > 0 {
		cfg.Platform.Schemes = initSchemes
	}

	if err := cfg.Save(workspaceFlag); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("Initialized %s\n", configPath)
	return nil
}
