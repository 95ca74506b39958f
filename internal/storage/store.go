package storage

import (
	"database/sql"
	"time"

	"lbc/internal/bundle"
	"lbc/internal/errors"
)

// StoredBundle is one persisted bundle with its member units in order.
type StoredBundle struct {
	ID            string
	Ordinal       int
	ComputationID string
	CreatedAt     time.Time
	Units         []StoredUnit
}

// StoredUnit is one persisted member unit.
type StoredUnit struct {
	ImportID string
	SourceID string
}

// SaveRegistry persists a computed registry. Bundles keep their closing
// order, appended after any bundles already stored (incremental passes add
// to the existing state; full passes call Reset first).
func (db *DB) SaveRegistry(reg *bundle.Registry, computationID string) error {
	now := time.Now().Unix()

	err := db.WithTx(func(tx *sql.Tx) error {
		var base sql.NullInt64
		if err := tx.QueryRow(`SELECT MAX(ordinal) FROM bundles`).Scan(&base); err != nil {
			return err
		}
		next := int(base.Int64) + 1

		for i, id := range reg.Components() {
			if _, err := tx.Exec(`
				INSERT INTO bundles (id, ordinal, computation_id, created_at)
				VALUES (?, ?, ?, ?)
			`, id, next+i, computationID, now); err != nil {
				return err
			}
			for j, u := range reg.Units(id) {
				if _, err := tx.Exec(`
					INSERT INTO bundle_units (import_id, source_id, bundle_id, ordinal)
					VALUES (?, ?, ?, ?)
				`, u.ImportID, u.SourceID, id, j); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.StateUnavailable, "failed to save registry", err)
	}

	db.logger.Debug("Registry saved", map[string]interface{}{
		"bundles":       reg.Len(),
		"units":         reg.UnitCount(),
		"computationId": computationID,
	})
	return nil
}

// SaveBundles persists pre-built bundles (e.g. restored from a snapshot),
// appended after any bundles already stored.
func (db *DB) SaveBundles(bundles []StoredBundle) error {
	err := db.WithTx(func(tx *sql.Tx) error {
		var base sql.NullInt64
		if err := tx.QueryRow(`SELECT MAX(ordinal) FROM bundles`).Scan(&base); err != nil {
			return err
		}
		next := int(base.Int64) + 1

		for i, b := range bundles {
			createdAt := b.CreatedAt.Unix()
			if b.CreatedAt.IsZero() {
				createdAt = time.Now().Unix()
			}
			if _, err := tx.Exec(`
				INSERT INTO bundles (id, ordinal, computation_id, created_at)
				VALUES (?, ?, ?, ?)
			`, b.ID, next+i, b.ComputationID, createdAt); err != nil {
				return err
			}
			for j, u := range b.Units {
				if _, err := tx.Exec(`
					INSERT INTO bundle_units (import_id, source_id, bundle_id, ordinal)
					VALUES (?, ?, ?, ?)
				`, u.ImportID, u.SourceID, b.ID, j); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.StateUnavailable, "failed to save bundles", err)
	}
	return nil
}

// Bundles returns all stored bundles in stored (reverse-topological) order.
func (db *DB) Bundles() ([]StoredBundle, error) {
	rows, err := db.conn.Query(`
		SELECT id, ordinal, computation_id, created_at
		FROM bundles
		ORDER BY ordinal
	`)
	if err != nil {
		return nil, errors.Wrap(errors.StateUnavailable, "failed to query bundles", err)
	}
	defer rows.Close() //nolint:errcheck // Best effort cleanup

	var bundles []StoredBundle
	for rows.Next() {
		var b StoredBundle
		var createdAt int64
		if err := rows.Scan(&b.ID, &b.Ordinal, &b.ComputationID, &createdAt); err != nil {
			return nil, errors.Wrap(errors.StateUnavailable, "failed to scan bundle", err)
		}
		b.CreatedAt = time.Unix(createdAt, 0)
		bundles = append(bundles, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.StateUnavailable, "failed to iterate bundles", err)
	}

	for i := range bundles {
		units, err := db.bundleUnits(bundles[i].ID)
		if err != nil {
			return nil, err
		}
		bundles[i].Units = units
	}
	return bundles, nil
}

func (db *DB) bundleUnits(bundleID string) ([]StoredUnit, error) {
	rows, err := db.conn.Query(`
		SELECT import_id, source_id
		FROM bundle_units
		WHERE bundle_id = ?
		ORDER BY ordinal
	`, bundleID)
	if err != nil {
		return nil, errors.Wrap(errors.StateUnavailable, "failed to query bundle units", err)
	}
	defer rows.Close() //nolint:errcheck // Best effort cleanup

	var units []StoredUnit
	for rows.Next() {
		var u StoredUnit
		if err := rows.Scan(&u.ImportID, &u.SourceID); err != nil {
			return nil, errors.Wrap(errors.StateUnavailable, "failed to scan bundle unit", err)
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

// FinalizedSet returns the import identities of every stored unit: the
// units a subsequent incremental pass must treat as already committed.
func (db *DB) FinalizedSet() (map[string]bool, error) {
	rows, err := db.conn.Query(`SELECT import_id FROM bundle_units`)
	if err != nil {
		return nil, errors.Wrap(errors.StateUnavailable, "failed to query finalized units", err)
	}
	defer rows.Close() //nolint:errcheck // Best effort cleanup

	finalized := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(errors.StateUnavailable, "failed to scan finalized unit", err)
		}
		finalized[id] = true
	}
	return finalized, rows.Err()
}

// RemoveUnits drops the given units from stored bundles, deleting any
// bundle left empty. An incremental pass calls this for the changed units
// before saving their recomputed bundles.
func (db *DB) RemoveUnits(importIDs []string) error {
	if len(importIDs) == 0 {
		return nil
	}
	err := db.WithTx(func(tx *sql.Tx) error {
		for _, id := range importIDs {
			if _, err := tx.Exec(`DELETE FROM bundle_units WHERE import_id = ?`, id); err != nil {
				return err
			}
		}
		_, err := tx.Exec(`
			DELETE FROM bundles
			WHERE id NOT IN (SELECT DISTINCT bundle_id FROM bundle_units)
		`)
		return err
	})
	if err != nil {
		return errors.Wrap(errors.StateUnavailable, "failed to remove units", err)
	}
	return nil
}

// Reset discards all stored bundles. Full recomputation starts here.
func (db *DB) Reset() error {
	err := db.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM bundle_units`); err != nil {
			return err
		}
		_, err := tx.Exec(`DELETE FROM bundles`)
		return err
	})
	if err != nil {
		return errors.Wrap(errors.StateUnavailable, "failed to reset state", err)
	}
	return nil
}
