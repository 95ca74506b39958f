package export

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"lbc/internal/errors"
	"lbc/internal/storage"
)

func sampleBundles() []storage.StoredBundle {
	return []storage.StoredBundle{
		{
			ID: "app/a",
			Units: []storage.StoredUnit{
				{ImportID: "app/a", SourceID: "file:///a.lib"},
				{ImportID: "app/b", SourceID: "file:///b.lib"},
			},
		},
		{
			ID: "app/main",
			Units: []storage.StoredUnit{
				{ImportID: "app/main", SourceID: "file:///main.lib"},
			},
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json.zst")

	snap := FromBundles(sampleBundles(), "comp-1")
	if err := Write(path, snap); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Version != SnapshotVersion {
		t.Errorf("Version = %d, want %d", got.Version, SnapshotVersion)
	}
	if got.ComputationID != "comp-1" {
		t.Errorf("ComputationID = %s, want comp-1", got.ComputationID)
	}
	if !reflect.DeepEqual(got.Bundles, snap.Bundles) {
		t.Errorf("Bundles = %+v, want %+v", got.Bundles, snap.Bundles)
	}
}

func TestWriteCompresses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json.zst")

	if err := Write(path, FromBundles(sampleBundles(), "comp-1")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	// zstd frame magic.
	if len(data) < 4 || data[0] != 0x28 || data[1] != 0xb5 || data[2] != 0x2f || data[3] != 0xfd {
		t.Errorf("snapshot is not a zstd frame: % x", data[:4])
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.zst")
	if err := os.WriteFile(path, []byte("not a zstd frame"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Read(path); !errors.HasCode(err, errors.SnapshotInvalid) {
		t.Errorf("err = %v, want SNAPSHOT_INVALID", err)
	}
}

func TestReadRejectsWrongVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json.zst")

	snap := FromBundles(sampleBundles(), "comp-1")
	snap.Version = 99
	if err := Write(path, snap); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if _, err := Read(path); !errors.HasCode(err, errors.SnapshotInvalid) {
		t.Errorf("err = %v, want SNAPSHOT_INVALID", err)
	}
}

func TestReadRejectsMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "absent.zst")); !errors.HasCode(err, errors.SnapshotInvalid) {
		t.Errorf("err = %v, want SNAPSHOT_INVALID", err)
	}
}

func TestToBundles(t *testing.T) {
	snap := FromBundles(sampleBundles(), "comp-1")

	got := snap.ToBundles()
	if len(got) != 2 {
		t.Fatalf("got %d bundles, want 2", len(got))
	}
	if got[0].ID != "app/a" || got[0].Ordinal != 0 || got[1].Ordinal != 1 {
		t.Errorf("ordinals not assigned in snapshot order: %+v", got)
	}
	if got[0].ComputationID != "comp-1" {
		t.Errorf("ComputationID = %s, want comp-1", got[0].ComputationID)
	}
	if len(got[0].Units) != 2 || got[0].Units[1].ImportID != "app/b" {
		t.Errorf("units = %+v", got[0].Units)
	}
}

func TestFromBundlesEmpty(t *testing.T) {
	snap := FromBundles(nil, "")
	if len(snap.Bundles) != 0 {
		t.Errorf("Bundles = %v, want empty", snap.Bundles)
	}
}
