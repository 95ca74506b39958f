// Package export reads and writes registry snapshots: zstd-compressed JSON
// captures of the stored bundle state, suitable for shipping a prebuilt
// artifact to another machine or seeding a fresh workspace.
package export

import (
	"encoding/json"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"

	"lbc/internal/errors"
	"lbc/internal/storage"
)

// SnapshotVersion is the snapshot schema version this build understands.
const SnapshotVersion = 1

// Snapshot is the serialized bundle state.
type Snapshot struct {
	Version       int            `json:"version"`
	ComputationID string         `json:"computationId,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	Bundles       []BundleRecord `json:"bundles"`
}

// BundleRecord is one bundle in a snapshot, members in stored order.
type BundleRecord struct {
	ID    string       `json:"id"`
	Units []UnitRecord `json:"units"`
}

// UnitRecord is one member unit.
type UnitRecord struct {
	ImportID string `json:"importId"`
	SourceID string `json:"sourceId"`
}

// FromBundles builds a snapshot from stored bundles, preserving order.
func FromBundles(bundles []storage.StoredBundle, computationID string) *Snapshot {
	snap := &Snapshot{
		Version:       SnapshotVersion,
		ComputationID: computationID,
		CreatedAt:     time.Now().UTC(),
	}
	for _, b := range bundles {
		rec := BundleRecord{ID: b.ID}
		for _, u := range b.Units {
			rec.Units = append(rec.Units, UnitRecord{ImportID: u.ImportID, SourceID: u.SourceID})
		}
		snap.Bundles = append(snap.Bundles, rec)
	}
	return snap
}

// ToBundles converts a snapshot back into stored-bundle form for loading
// into a state database.
func (s *Snapshot) ToBundles() []storage.StoredBundle {
	var out []storage.StoredBundle
	for i, b := range s.Bundles {
		sb := storage.StoredBundle{ID: b.ID, Ordinal: i, ComputationID: s.ComputationID, CreatedAt: s.CreatedAt}
		for _, u := range b.Units {
			sb.Units = append(sb.Units, storage.StoredUnit{ImportID: u.ImportID, SourceID: u.SourceID})
		}
		out = append(out, sb)
	}
	return out
}

// Write stores a snapshot at path as zstd-compressed JSON.
func Write(path string, snap *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.SnapshotInvalid, "failed to create snapshot file", err)
	}

	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return errors.Wrap(errors.SnapshotInvalid, "failed to create compressor", err)
	}

	if err := json.NewEncoder(enc).Encode(snap); err != nil {
		enc.Close()
		f.Close()
		return errors.Wrap(errors.SnapshotInvalid, "failed to encode snapshot", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return errors.Wrap(errors.SnapshotInvalid, "failed to flush snapshot", err)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.SnapshotInvalid, "failed to close snapshot file", err)
	}
	return nil
}

// Read loads and validates a snapshot written by Write.
func Read(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.SnapshotInvalid, "failed to open snapshot file", err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, errors.Wrap(errors.SnapshotInvalid, "failed to create decompressor", err)
	}
	defer dec.Close()

	var snap Snapshot
	if err := json.NewDecoder(dec).Decode(&snap); err != nil {
		return nil, errors.Wrap(errors.SnapshotInvalid, "failed to decode snapshot", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, errors.Newf(errors.SnapshotInvalid,
			"unsupported snapshot version %d, want %d", snap.Version, SnapshotVersion)
	}
	for _, b := range snap.Bundles {
		if b.ID == "" || len(b.Units) == 0 {
			return nil, errors.Newf(errors.SnapshotInvalid, "malformed bundle %q", b.ID)
		}
	}
	return &snap, nil
}
