package tile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScope_Lookup(t *testing.T) {
	s := NewScope(
		map[string]any{"a": "local"},
		map[string]any{"a": "global", "b": "global"},
	)

	tests := []struct {
		name string
		want any
		ok   bool
	}{
		{"a", "local", true},
		{"b", "global", true},
		{"c", nil, false},
	}

	for _, tt := range tests {
		got, ok := s.Lookup(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Lookup(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}

	if _, ok := (Scope{}).Lookup("a"); ok {
		t.Error("zero Scope resolved a name")
	}
}

func TestScope_Names(t *testing.T) {
	s := NewScope(
		map[string]any{"z": 1, "a": 2},
		map[string]any{"a": 3, "m": 4},
	)

	if diff := cmp.Diff([]string{"a", "m", "z"}, s.Names()); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestScope_With(t *testing.T) {
	locals := map[string]any{"a": 1}
	s := Vars(locals)

	derived := s.With(map[string]any{"a": 2, "b": 3})

	if v, _ := derived.Lookup("a"); v != 2 {
		t.Errorf("derived a = %v, want 2", v)
	}

	if v, _ := s.Lookup("a"); v != 1 {
		t.Errorf("original a = %v, want 1", v)
	}

	if _, ok := locals["b"]; ok {
		t.Error("With modified the receiver's locals")
	}
}

func TestScope_Env(t *testing.T) {
	s := NewScope(
		map[string]any{"x": "local"},
		map[string]any{"x": "global", "y": "global"},
	)

	env := s.env(map[string]any{"x": "builtin", "y": "builtin", "z": "builtin"})

	want := map[string]any{"x": "local", "y": "global", "z": "builtin"}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Errorf("env mismatch (-want +got):\n%s", diff)
	}
}
