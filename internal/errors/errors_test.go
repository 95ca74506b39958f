package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestLbcErrorFormat(t *testing.T) {
	tests := []struct {
		name      string
		err       *LbcError
		wantParts []string
	}{
		{
			name:      "with cause",
			err:       Wrap(StateUnavailable, "cannot open state database", errors.New("disk full")),
			wantParts: []string{"STATE_UNAVAILABLE", "cannot open state database", "disk full"},
		},
		{
			name:      "without cause",
			err:       New(EntryPointNotFound, "entry unit app/main not found"),
			wantParts: []string{"ENTRY_POINT_NOT_FOUND", "entry unit app/main not found"},
		},
		{
			name:      "formatted message",
			err:       Newf(ManifestInvalid, "duplicate unit %q", "app/a"),
			wantParts: []string{"MANIFEST_INVALID", `duplicate unit "app/a"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("Error() = %q, missing %q", got, part)
				}
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(InternalError, "wrapped", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
	if New(InternalError, "no cause").Unwrap() != nil {
		t.Error("Unwrap without cause should return nil")
	}
}

func TestHasCode(t *testing.T) {
	err := New(EntryPointNotFound, "missing")

	if !HasCode(err, EntryPointNotFound) {
		t.Error("HasCode should match the error's code")
	}
	if HasCode(err, RegistryPopulated) {
		t.Error("HasCode should reject a different code")
	}
	if HasCode(errors.New("plain"), EntryPointNotFound) {
		t.Error("HasCode should reject non-LbcError values")
	}

	// Codes survive fmt wrapping.
	wrapped := fmt.Errorf("compute: %w", err)
	if !HasCode(wrapped, EntryPointNotFound) {
		t.Error("HasCode should see through fmt.Errorf wrapping")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(SnapshotInvalid, "bad header")); got != SnapshotInvalid {
		t.Errorf("CodeOf = %v, want %v", got, SnapshotInvalid)
	}
	if got := CodeOf(errors.New("plain")); got != InternalError {
		t.Errorf("CodeOf(plain) = %v, want %v", got, InternalError)
	}
}

func TestWithDetails(t *testing.T) {
	err := New(EntryPointNotFound, "missing").WithDetails(map[string]string{"entry": "app/main"})

	details, ok := err.Details.(map[string]string)
	if !ok || details["entry"] != "app/main" {
		t.Errorf("Details = %v, want entry=app/main", err.Details)
	}
}
