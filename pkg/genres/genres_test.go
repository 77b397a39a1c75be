package genres

import (
	"reflect"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"28", "Acción"},
		{"Action", "Acción"},
		{"10759", "Acción"},
		{"878", "Ciencia ficción"},
		{"Science Fiction", "Ciencia ficción"},
		{"Drama", "Drama"},
		{"Trending", "Trending"}, // unknown token passes through
		{" 28 ", "Acción"},       // surrounding whitespace tolerated
		{"", ""},
	}
	for _, tt := range tests {
		if got := Resolve(tt.token); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestGroupTokens(t *testing.T) {
	sets := [][]string{
		{"28", "Drama"},
		{"Action", "Thriller"},
		{"Drama", ""},
	}
	groups, names := GroupTokens(sets)

	if !reflect.DeepEqual(names, []string{"Acción", "Drama", "Suspense"}) {
		t.Fatalf("names = %v", names)
	}
	// "28" and "Action" land in the same display bucket
	if !reflect.DeepEqual(groups["Acción"], []string{"28", "Action"}) {
		t.Fatalf("Acción tokens = %v", groups["Acción"])
	}
	if !reflect.DeepEqual(groups["Drama"], []string{"Drama"}) {
		t.Fatalf("Drama tokens = %v", groups["Drama"])
	}
}

func TestIsActive(t *testing.T) {
	group := []string{"28", "Action"}
	if !IsActive([]string{"Action"}, group) {
		t.Error("group with one selected token should be active")
	}
	if !IsActive([]string{"28"}, group) {
		t.Error("either raw token activates the group")
	}
	if IsActive([]string{"Drama"}, group) {
		t.Error("unrelated selection should not activate the group")
	}
	if IsActive(nil, group) {
		t.Error("empty selection is never active")
	}
}

func TestToggle(t *testing.T) {
	group := []string{"28", "Action"}

	// inactive -> adds all raw tokens
	sel := Toggle([]string{"Drama"}, group)
	if !reflect.DeepEqual(sel, []string{"Drama", "28", "Action"}) {
		t.Fatalf("toggle on = %v", sel)
	}

	// active (via any token) -> removes all raw tokens
	sel = Toggle(sel, group)
	if !reflect.DeepEqual(sel, []string{"Drama"}) {
		t.Fatalf("toggle off = %v", sel)
	}

	// partially selected group counts as active and is fully removed
	sel = Toggle([]string{"28", "Drama"}, group)
	if !reflect.DeepEqual(sel, []string{"Drama"}) {
		t.Fatalf("partial toggle = %v", sel)
	}

	// empty toggle input clears the whole selection
	if got := Toggle([]string{"Drama", "28"}, nil); got != nil {
		t.Fatalf("empty group should clear selection, got %v", got)
	}
}
