// Package units defines the compilation-unit model that bundle computation
// consumes. Units are produced by an external front end; this package treats
// them as opaque nodes carrying an identity pair and an ordered import list.
package units

import "fmt"

// Unit represents one compilation unit (library) in the dependency graph.
type Unit struct {
	// ImportID is the logical name other units use to import this unit
	ImportID string `json:"importId"`

	// SourceID is the physical origin of the unit's source (e.g. a file URI)
	SourceID string `json:"sourceId"`

	// Imports are the unit's outgoing dependencies, in declaration order.
	// Edge order is significant: bundle identity tie-breaking depends on it.
	Imports []Edge `json:"imports,omitempty"`
}

// Edge is a directed dependency on another unit, named by import identity.
type Edge struct {
	// Target is the import identity of the depended-on unit
	Target string `json:"target"`
}

// String returns the unit's import identity for logging and error messages.
func (u *Unit) String() string {
	return u.ImportID
}

// Set holds the units in scope for one computation, indexed by both
// identities. Insertion order is preserved.
type Set struct {
	byImport map[string]*Unit
	bySource map[string]*Unit
	ordered  []*Unit
}

// NewSet creates a Set containing the given units.
// It fails on the first duplicate identity.
func NewSet(us ...*Unit) (*Set, error) {
	s := &Set{
		byImport: make(map[string]*Unit, len(us)),
		bySource: make(map[string]*Unit, len(us)),
	}
	for _, u := range us {
		if err := s.Add(u); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add inserts a unit. Both identities must be non-empty and unused.
func (s *Set) Add(u *Unit) error {
	if u.ImportID == "" {
		return fmt.Errorf("unit with source %q has empty import identity", u.SourceID)
	}
	if u.SourceID == "" {
		return fmt.Errorf("unit %q has empty source identity", u.ImportID)
	}
	if _, ok := s.byImport[u.ImportID]; ok {
		return fmt.Errorf("duplicate import identity %q", u.ImportID)
	}
	if _, ok := s.bySource[u.SourceID]; ok {
		return fmt.Errorf("duplicate source identity %q", u.SourceID)
	}
	s.byImport[u.ImportID] = u
	s.bySource[u.SourceID] = u
	s.ordered = append(s.ordered, u)
	return nil
}

// ByImport looks up a unit by import identity.
func (s *Set) ByImport(id string) (*Unit, bool) {
	u, ok := s.byImport[id]
	return u, ok
}

// BySource looks up a unit by source identity.
func (s *Set) BySource(id string) (*Unit, bool) {
	u, ok := s.bySource[id]
	return u, ok
}

// Lookup resolves an identity that may be either an import identity or a
// source identity. Import identity wins when both match.
func (s *Set) Lookup(id string) (*Unit, bool) {
	if u, ok := s.byImport[id]; ok {
		return u, true
	}
	if u, ok := s.bySource[id]; ok {
		return u, true
	}
	return nil, false
}

// Len returns the number of units in the set.
func (s *Set) Len() int {
	return len(s.ordered)
}

// Units returns the units in insertion order. The slice is shared; callers
// must not mutate it.
func (s *Set) Units() []*Unit {
	return s.ordered
}
