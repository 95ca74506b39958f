package platform

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"lbc/internal/errors"
)

func TestLoadDeclaration(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "platform.toml")
	content := `
schemes = ["core:", "host:"]

[[library]]
name = "vm/ffi"

[[library]]
name = "vm/isolates"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	decl, err := LoadDeclaration(path)
	if err != nil {
		t.Fatalf("LoadDeclaration failed: %v", err)
	}
	if !reflect.DeepEqual(decl.Schemes, []string{"core:", "host:"}) {
		t.Errorf("Schemes = %v", decl.Schemes)
	}
	if len(decl.Libraries) != 2 || decl.Libraries[0].Name != "vm/ffi" {
		t.Errorf("Libraries = %v", decl.Libraries)
	}
}

func TestLoadDeclarationMissingFile(t *testing.T) {
	decl, err := LoadDeclaration(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing declaration file should not fail: %v", err)
	}
	if len(decl.Schemes) != 0 || len(decl.Libraries) != 0 {
		t.Errorf("missing file should yield empty declaration, got %+v", decl)
	}
}

func TestLoadDeclarationInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	badToml := filepath.Join(tmpDir, "bad.toml")
	if err := os.WriteFile(badToml, []byte("schemes = [not toml"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadDeclaration(badToml); !errors.HasCode(err, errors.PlatformInvalid) {
		t.Errorf("err = %v, want PLATFORM_INVALID", err)
	}

	emptyName := filepath.Join(tmpDir, "empty.toml")
	if err := os.WriteFile(emptyName, []byte("[[library]]\nname = \"\"\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadDeclaration(emptyName); !errors.HasCode(err, errors.PlatformInvalid) {
		t.Errorf("err = %v, want PLATFORM_INVALID for empty library name", err)
	}
}

func TestMergeSchemes(t *testing.T) {
	decl := &Declaration{
		Schemes:   []string{"host:", "core:"},
		Libraries: []Library{{Name: "vm/ffi"}},
	}

	got := MergeSchemes([]string{"core:"}, decl)
	want := []string{"core:", "host:", "vm/ffi"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeSchemes = %v, want %v", got, want)
	}

	if got := MergeSchemes(nil, nil); len(got) != 0 {
		t.Errorf("MergeSchemes(nil, nil) = %v, want empty", got)
	}
}
