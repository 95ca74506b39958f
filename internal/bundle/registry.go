// Package bundle groups compilation units into output bundles. Units that
// participate in a mutual (cyclic) dependency are emitted together because
// the output module format forbids circular imports; the registry records
// which units share a bundle and under which identity.
package bundle

import "lbc/internal/units"

// Registry holds the output of one bundle computation: the ordered list of
// bundles and the unit-to-bundle ownership map. It is built exactly once per
// computation and read-only afterwards; callers construct a fresh Registry
// per full or incremental pass.
type Registry struct {
	order            []string
	unitsByComponent map[string][]*units.Unit
	componentByUnit  map[string]string
}

// NewRegistry creates an empty registry ready for one computation.
func NewRegistry() *Registry {
	return &Registry{
		unitsByComponent: make(map[string][]*units.Unit),
		componentByUnit:  make(map[string]string),
	}
}

// Populated reports whether the registry already holds bundles.
func (r *Registry) Populated() bool {
	return len(r.order) > 0
}

// Len returns the number of bundles.
func (r *Registry) Len() int {
	return len(r.order)
}

// Components returns bundle identities in the order the components closed,
// which is reverse topological: a bundle appears only after every bundle it
// depends on.
func (r *Registry) Components() []string {
	return r.order
}

// Units returns the ordered member units of a bundle, or nil if the
// identity is unknown.
func (r *Registry) Units(componentID string) []*units.Unit {
	return r.unitsByComponent[componentID]
}

// ComponentOf returns the bundle owning the unit with the given import
// identity. Lookups for units that were finalized or unreachable report
// false.
func (r *Registry) ComponentOf(importID string) (string, bool) {
	id, ok := r.componentByUnit[importID]
	return id, ok
}

// UnitCount returns the total number of units across all bundles.
func (r *Registry) UnitCount() int {
	return len(r.componentByUnit)
}

// record registers one closed component under its identity.
// An empty member list is an algorithm defect, not a runtime condition.
func (r *Registry) record(id string, members []*units.Unit) {
	if len(members) == 0 {
		panic("bundle: closed component with no members")
	}
	r.order = append(r.order, id)
	r.unitsByComponent[id] = members
	for _, u := range members {
		r.componentByUnit[u.ImportID] = id
	}
}
