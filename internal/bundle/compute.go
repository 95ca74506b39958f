package bundle

import (
	"lbc/internal/depgraph"
	"lbc/internal/errors"
	"lbc/internal/logging"
	"lbc/internal/scc"
	"lbc/internal/units"
)

// Request describes one bundle computation.
type Request struct {
	// Units are the in-scope compilation units for this computation
	Units *units.Set

	// Entry identifies the root unit, by import identity or source
	// identity
	Entry string

	// Policy filters traversal: finalized units, platform namespaces,
	// and (incremental mode) substitutions
	Policy depgraph.Policy
}

// Compute groups the units reachable from the entry unit into bundles and
// populates reg. The computation is synchronous, holds no lock, and either
// succeeds completely or leaves reg untouched.
//
// Bundles are recorded in component closing order (reverse topological).
// A bundle containing the entry unit takes the entry unit's import identity;
// any other bundle takes the import identity of its first unit in discovery
// order. That tie-break is traversal-order-dependent and callers must not
// read meaning into non-entry bundle names beyond naming stability.
func Compute(req Request, reg *Registry, logger *logging.Logger) error {
	if reg.Populated() {
		return errors.New(errors.RegistryPopulated,
			"bundle computation requires an empty registry; construct a fresh one per pass")
	}

	entry, ok := req.Units.Lookup(req.Entry)
	if !ok {
		return errors.Newf(errors.EntryPointNotFound,
			"entry unit %q not found in the supplied unit set", req.Entry).
			WithDetails(map[string]interface{}{
				"entry":     req.Entry,
				"unitCount": req.Units.Len(),
			})
	}

	view := depgraph.NewView(req.Units, req.Policy)
	components := scc.Components[*units.Unit](view, entry)

	for _, comp := range components {
		reg.record(identityOf(comp, entry), comp)
	}

	logger.Debug("Bundle computation complete", map[string]interface{}{
		"entry":   entry.ImportID,
		"bundles": reg.Len(),
		"units":   reg.UnitCount(),
	})
	return nil
}

// identityOf picks the canonical identity for a closed component: the entry
// unit's import identity when the entry unit is a member, otherwise the
// import identity of the first unit in discovery order.
func identityOf(comp []*units.Unit, entry *units.Unit) string {
	for _, u := range comp {
		if u == entry {
			return entry.ImportID
		}
	}
	return comp[0].ImportID
}
