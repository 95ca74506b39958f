package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"lbc/internal/bundle"
	"lbc/internal/config"
	"lbc/internal/depgraph"
	"lbc/internal/manifest"
	"lbc/internal/platform"
	"lbc/internal/storage"
	"lbc/internal/units"
)

var (
	computeManifest    string
	computeEntry       string
	computeIncremental bool
	computeJSON        bool
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute bundle assignments from a unit-graph manifest",
	Long: `Reads a unit-graph manifest, groups the libraries reachable from the
entry unit into bundles, and saves the result to the workspace state
database.

A full pass (the default) discards previously stored bundles first. With
--incremental, units already stored and not re-declared in the manifest are
treated as finalized: they are never traversed or regrouped, and units the
manifest re-declares replace their stored versions.

Examples:
  lbc compute --manifest graph.yaml
  lbc compute --manifest graph.yaml --entry app/main
  lbc compute --manifest changed.yaml --incremental`,
	RunE: runCompute,
}

func init() {
	computeCmd.Flags().StringVar(&computeManifest, "manifest", "", "Path to the unit-graph manifest (required)")
	computeCmd.Flags().StringVar(&computeEntry, "entry", "", "Entry unit (import or source identity); overrides manifest and config")
	computeCmd.Flags().BoolVar(&computeIncremental, "incremental", false, "Keep stored bundles as the finalized set")
	computeCmd.Flags().BoolVar(&computeJSON, "json", false, "Print the summary as JSON")
	_ = computeCmd.MarkFlagRequired("manifest")
	rootCmd.AddCommand(computeCmd)
}

// computeSummary is the machine-readable result printed on success.
type computeSummary struct {
	ComputationID string          `json:"computationId"`
	Entry         string          `json:"entry"`
	Incremental   bool            `json:"incremental"`
	Bundles       []bundleSummary `json:"bundles"`
}

type bundleSummary struct {
	ID    string   `json:"id"`
	Units []string `json:"units"`
}

func runCompute(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(workspaceFlag)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cfg)

	m, err := manifest.Load(computeManifest)
	if err != nil {
		return err
	}
	set, err := m.UnitSet()
	if err != nil {
		return err
	}

	entry := computeEntry
	if entry == "" {
		entry = m.Entry
	}
	if entry == "" {
		entry = cfg.Entry.Unit
	}
	if entry == "" {
		return fmt.Errorf("no entry unit: pass --entry, or set it in the manifest or config")
	}

	schemes := cfg.Platform.Schemes
	if cfg.Platform.DeclarationFile != "" {
		decl, err := platform.LoadDeclaration(filepath.Join(workspaceFlag, cfg.Platform.DeclarationFile))
		if err != nil {
			return err
		}
		schemes = platform.MergeSchemes(schemes, decl)
	}

	db, err := storage.Open(filepath.Join(workspaceFlag, cfg.State.Dir), logger)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // Best effort cleanup

	policy := depgraph.Policy{PlatformSchemes: schemes}
	var changed []string

	if computeIncremental {
		finalized, err := db.FinalizedSet()
		if err != nil {
			return err
		}
		// Units the manifest re-declares are the changed set: they leave
		// the finalized set and substitute their stored versions.
		subs := make(map[string]*units.Unit)
		for _, u := range set.Units() {
			if finalized[u.ImportID] {
				delete(finalized, u.ImportID)
				subs[u.ImportID] = u
				changed = append(changed, u.ImportID)
			}
		}
		policy.Finalized = finalized
		policy.Substitutions = subs
	} else {
		if err := db.Reset(); err != nil {
			return err
		}
	}

	computationID := uuid.NewString()
	logger.Info("Starting bundle computation", map[string]interface{}{
		"computationId": computationID,
		"entry":         entry,
		"units":         set.Len(),
		"incremental":   computeIncremental,
	})

	reg := bundle.NewRegistry()
	if err := bundle.Compute(bundle.Request{Units: set, Entry: entry, Policy: policy}, reg, logger); err != nil {
		return err
	}

	if err := db.RemoveUnits(changed); err != nil {
		return err
	}
	if err := db.SaveRegistry(reg, computationID); err != nil {
		return err
	}

	summary := computeSummary{
		ComputationID: computationID,
		Entry:         entry,
		Incremental:   computeIncremental,
	}
	for _, id := range reg.Components() {
		bs := bundleSummary{ID: id}
		for _, u := range reg.Units(id) {
			bs.Units = append(bs.Units, u.ImportID)
		}
		summary.Bundles = append(summary.Bundles, bs)
	}
	return printComputeSummary(summary)
}

func printComputeSummary(s computeSummary) error {
	if computeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	fmt.Printf("Computed %d bundle(s) from entry %s\n", len(s.Bundles), s.Entry)
	for _, b := range s.Bundles {
		fmt.Printf("  %s (%d unit(s))\n", b.ID, len(b.Units))
		for _, u := range b.Units {
			fmt.Printf("    %s\n", u)
		}
	}
	return nil
}
