// Package depgraph exposes a filtered, read-only view of the unit dependency
// graph for one bundle computation. The view applies the traversal policy
// (finalized units, platform namespaces, substitutions) so the component
// engine never sees an edge it must not follow.
package depgraph

import (
	"strings"

	"lbc/internal/units"
)

// Policy controls which edges the view exposes and how edge targets resolve.
// All fields are read-only for the duration of one computation.
type Policy struct {
	// Finalized holds import identities of units already committed to
	// previously emitted bundles. Edges into them are inert and the units
	// themselves are never regrouped.
	Finalized map[string]bool

	// PlatformSchemes are import-identity prefixes of the built-in/platform
	// namespace (e.g. "core:"). Edges into them are inert.
	PlatformSchemes []string

	// Substitutions redirects an edge's nominal target to a replacement
	// unit supplied for this computation (incremental mode). Absent an
	// entry, the edge's literal target is used.
	Substitutions map[string]*units.Unit
}

// IsPlatform reports whether an import identity belongs to a platform
// namespace.
func (p Policy) IsPlatform(importID string) bool {
	for _, scheme := range p.PlatformSchemes {
		if strings.HasPrefix(importID, scheme) {
			return true
		}
	}
	return false
}

// inert reports whether an edge with the given nominal target must be
// ignored by traversal.
func (p Policy) inert(target string) bool {
	if p.IsPlatform(target) {
		return true
	}
	return p.Finalized[target]
}

// View is an immutable snapshot of the dependency graph restricted by a
// Policy. One View serves exactly one computation.
type View struct {
	set    *units.Set
	policy Policy
}

// NewView creates a view over the given unit set.
func NewView(set *units.Set, policy Policy) *View {
	return &View{set: set, policy: policy}
}

// VerticesFrom returns the traversal roots for the given entry unit. Further
// vertices are discovered through edges, not an upfront vertex set.
func (v *View) VerticesFrom(root *units.Unit) []*units.Unit {
	return []*units.Unit{root}
}

// NeighborsOf returns the resolved target of every non-inert outgoing edge
// of u, in the unit's original edge order. The order is deterministic for
// identical inputs; component identity tie-breaking depends on it.
func (v *View) NeighborsOf(u *units.Unit) []*units.Unit {
	var out []*units.Unit
	for _, e := range u.Imports {
		if v.policy.inert(e.Target) {
			continue
		}
		if sub, ok := v.policy.Substitutions[e.Target]; ok {
			out = append(out, sub)
			continue
		}
		target, ok := v.set.ByImport(e.Target)
		if !ok {
			// Target outside the supplied set: external to this
			// computation, nothing to traverse.
			continue
		}
		out = append(out, target)
	}
	return out
}
