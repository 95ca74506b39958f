package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lbc/internal/config"
	"lbc/internal/storage"
)

var (
	inspectBundle string
	inspectJSON   bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "List stored bundles and their member units",
	Long: `Reads the workspace state database and prints every stored bundle in
stored order (a bundle appears only after the bundles it depends on).

Examples:
  lbc inspect
  lbc inspect --bundle app/main
  lbc inspect --json`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectBundle, "bundle", "", "Show only the bundle with this identity")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Print as JSON")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(workspaceFlag)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cfg)

	db, err := storage.Open(filepath.Join(workspaceFlag, cfg.State.Dir), logger)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // Best effort cleanup

	bundles, err := db.Bundles()
	if err != nil {
		return err
	}

	if inspectBundle != "" {
		filtered := bundles[:0]
		for _, b := range bundles {
			if b.ID == inspectBundle {
				filtered = append(filtered, b)
			}
		}
		if len(filtered) == 0 {
			return fmt.Errorf("bundle %q not found", inspectBundle)
		}
		bundles = filtered
	}

	if inspectJSON {
		type unitOut struct {
			ImportID string `json:"importId"`
			SourceID string `json:"sourceId"`
		}
		type bundleOut struct {
			ID            string    `json:"id"`
			ComputationID string    `json:"computationId"`
			Units         []unitOut `json:"units"`
		}
		var out []bundleOut
		for _, b := range bundles {
			bo := bundleOut{ID: b.ID, ComputationID: b.ComputationID}
			for _, u := range b.Units {
				bo.Units = append(bo.Units, unitOut{ImportID: u.ImportID, SourceID: u.SourceID})
			}
			out = append(out, bo)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(bundles) == 0 {
		fmt.Println("No bundles stored. Run 'lbc compute' first.")
		return nil
	}
	for _, b := range bundles {
		fmt.Printf("%s (%d unit(s), computation %s)\n", b.ID, len(b.Units), b.ComputationID)
		for _, u := range b.Units {
			fmt.Printf("  %s  %s\n", u.ImportID, u.SourceID)
		}
	}
	return nil
}
