package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"lbc/internal/config"
	"lbc/internal/export"
	"lbc/internal/storage"
)

var (
	exportOut  string
	exportLoad string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export or import a compressed bundle-state snapshot",
	Long: `Writes the stored bundle state as a zstd-compressed JSON snapshot, or
loads a previously exported snapshot into the workspace state database.
Snapshots seed a fresh workspace with prebuilt bundles so its first pass
can already run incrementally.

Examples:
  lbc export --out bundles.json.zst
  lbc export --load bundles.json.zst`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Write a snapshot to this path")
	exportCmd.Flags().StringVar(&exportLoad, "load", "", "Load a snapshot from this path")
	exportCmd.MarkFlagsMutuallyExclusive("out", "load")
	exportCmd.MarkFlagsOneRequired("out", "load")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
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

	if exportLoad != "" {
		snap, err := export.Read(exportLoad)
		if err != nil {
			return err
		}
		if err := db.SaveBundles(snap.ToBundles()); err != nil {
			return err
		}
		fmt.Printf("Loaded %d bundle(s) from %s\n", len(snap.Bundles), exportLoad)
		return nil
	}

	bundles, err := db.Bundles()
	if err != nil {
		return err
	}
	computationID := ""
	if len(bundles) > 0 {
		// Snapshot carries the most recent computation's ID.
		computationID = bundles[len(bundles)-1].ComputationID
	}
	snap := export.FromBundles(bundles, computationID)
	if err := export.Write(exportOut, snap); err != nil {
		return err
	}
	fmt.Printf("Exported %d bundle(s) to %s\n", len(snap.Bundles), exportOut)
	return nil
}
