// Package platform declares the built-in library namespaces of the target
// module system. Edges into these namespaces are provided natively by the
// output format and never traversed during bundle computation.
package platform

import (
	"os"

	"github.com/BurntSushi/toml"

	"lbc/internal/errors"
)

// Declaration is the parsed contents of a platform.toml file.
type Declaration struct {
	// Schemes are import-identity prefixes of platform namespaces,
	// e.g. "core:".
	Schemes []string `toml:"schemes"`

	// Libraries are individual platform-provided import identities that
	// do not share a scheme prefix.
	Libraries []Library `toml:"library"`
}

// Library is one declared platform library.
type Library struct {
	Name string `toml:"name"`
}

// LoadDeclaration reads a platform.toml declaration file. A missing file is
// not an error: platform schemes can come entirely from configuration.
func LoadDeclaration(path string) (*Declaration, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Declaration{}, nil
	}

	var decl Declaration
	if _, err := toml.DecodeFile(path, &decl); err != nil {
		return nil, errors.Wrap(errors.PlatformInvalid, "failed to parse platform declaration", err)
	}

	for _, lib := range decl.Libraries {
		if lib.Name == "" {
			return nil, errors.New(errors.PlatformInvalid, "platform library with empty name")
		}
	}
	return &decl, nil
}

// MergeSchemes combines configured schemes with declared schemes and
// declared library names into the prefix list the traversal policy uses.
// Duplicates are dropped, first occurrence wins.
func MergeSchemes(configured []string, decl *Declaration) []string {
	var out []string
	seen := map[string]bool{}
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range configured {
		add(s)
	}
	if decl != nil {
		for _, s := range decl.Schemes {
			add(s)
		}
		// A declared library name acts as an exact-prefix of itself.
		for _, lib := range decl.Libraries {
			add(lib.Name)
		}
	}
	return out
}
