package units

import "testing"

func TestSetLookupByEitherIdentity(t *testing.T) {
	a := &Unit{ImportID: "app/a", SourceID: "file:///src/a.lib"}
	b := &Unit{ImportID: "app/b", SourceID: "file:///src/b.lib"}

	s, err := NewSet(a, b)
	if err != nil {
		t.Fatalf("NewSet failed: %v", err)
	}

	if got, ok := s.ByImport("app/a"); !ok || got != a {
		t.Errorf("ByImport(app/a) = %v, %v; want a, true", got, ok)
	}
	if got, ok := s.BySource("file:///src/b.lib"); !ok || got != b {
		t.Errorf("BySource(b.lib) = %v, %v; want b, true", got, ok)
	}
	if got, ok := s.Lookup("app/b"); !ok || got != b {
		t.Errorf("Lookup by import identity = %v, %v; want b, true", got, ok)
	}
	if got, ok := s.Lookup("file:///src/a.lib"); !ok || got != a {
		t.Errorf("Lookup by source identity = %v, %v; want a, true", got, ok)
	}
	if _, ok := s.Lookup("app/missing"); ok {
		t.Error("Lookup of unknown identity should fail")
	}
}

func TestSetRejectsDuplicates(t *testing.T) {
	tests := []struct {
		name  string
		units []*Unit
	}{
		{
			name: "duplicate import identity",
			units: []*Unit{
				{ImportID: "app/a", SourceID: "file:///src/a.lib"},
				{ImportID: "app/a", SourceID: "file:///src/a2.lib"},
			},
		},
		{
			name: "duplicate source identity",
			units: []*Unit{
				{ImportID: "app/a", SourceID: "file:///src/a.lib"},
				{ImportID: "app/b", SourceID: "file:///src/a.lib"},
			},
		},
		{
			name: "empty import identity",
			units: []*Unit{
				{ImportID: "", SourceID: "file:///src/a.lib"},
			},
		},
		{
			name: "empty source identity",
			units: []*Unit{
				{ImportID: "app/a", SourceID: ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSet(tt.units...); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSetPreservesInsertionOrder(t *testing.T) {
	a := &Unit{ImportID: "app/a", SourceID: "s:a"}
	b := &Unit{ImportID: "app/b", SourceID: "s:b"}
	c := &Unit{ImportID: "app/c", SourceID: "s:c"}

	s, err := NewSet(c, a, b)
	if err != nil {
		t.Fatalf("NewSet failed: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}

	want := []string{"app/c", "app/a", "app/b"}
	for i, u := range s.Units() {
		if u.ImportID != want[i] {
			t.Errorf("Units()[%d] = %s, want %s", i, u.ImportID, want[i])
		}
	}
}
