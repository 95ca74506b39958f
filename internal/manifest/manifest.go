// Package manifest reads unit-graph manifests: the serialized form of the
// library dependency graph a front end hands to bundle computation. YAML,
// TOML, and JSON manifests are supported, chosen by file extension.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"lbc/internal/errors"
	"lbc/internal/units"
)

// Version is the manifest schema version this build understands.
const Version = 1

// Manifest is one serialized unit graph.
type Manifest struct {
	Version int        `yaml:"version" toml:"version" json:"version"`
	Entry   string     `yaml:"entry,omitempty" toml:"entry,omitempty" json:"entry,omitempty"`
	Units   []UnitDecl `yaml:"units" toml:"units" json:"units"`
}

// UnitDecl declares one compilation unit and its outgoing imports, in
// declaration order.
type UnitDecl struct {
	Import  string   `yaml:"import" toml:"import" json:"import"`
	Source  string   `yaml:"source" toml:"source" json:"source"`
	Imports []string `yaml:"imports,omitempty" toml:"imports,omitempty" json:"imports,omitempty"`
}

// Load reads and validates a manifest file. The decoder is picked from the
// file extension: .yaml/.yml, .toml, or .json.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ManifestInvalid, "failed to read manifest", err)
	}

	var m Manifest
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	case ".toml":
		err = toml.Unmarshal(data, &m)
	case ".json":
		err = json.Unmarshal(data, &m)
	default:
		return nil, errors.Newf(errors.ManifestInvalid,
			"unsupported manifest format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, errors.Wrap(errors.ManifestInvalid, "failed to parse manifest", err)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if m.Version != Version {
		return errors.Newf(errors.ManifestInvalid,
			"unsupported manifest version %d, want %d", m.Version, Version)
	}
	if len(m.Units) == 0 {
		return errors.New(errors.ManifestInvalid, "manifest declares no units")
	}
	for i, u := range m.Units {
		if u.Import == "" {
			return errors.Newf(errors.ManifestInvalid, "unit %d has empty import identity", i)
		}
		if u.Source == "" {
			return errors.Newf(errors.ManifestInvalid, "unit %q has empty source identity", u.Import)
		}
	}
	return nil
}

// UnitSet converts the manifest's declarations into a unit set, preserving
// declaration order and edge order.
func (m *Manifest) UnitSet() (*units.Set, error) {
	set, _ := units.NewSet()
	for _, decl := range m.Units {
		u := &units.Unit{ImportID: decl.Import, SourceID: decl.Source}
		for _, target := range decl.Imports {
			u.Imports = append(u.Imports, units.Edge{Target: target})
		}
		if err := set.Add(u); err != nil {
			return nil, errors.Wrap(errors.ManifestInvalid, "invalid unit set", err)
		}
	}
	return set, nil
}
