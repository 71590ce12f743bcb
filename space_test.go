package gridsearch

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpandSingleGrid(t *testing.T) {
	space := Grid{
		"a": {1, 2},
		"b": {"x", "y", "z"},
	}

	got, err := Expand(space)
	if err != nil {
		t.Fatalf("Expand() failed: %v", err)
	}

	// Nested-loop order: sorted keys, right-most key varying fastest.
	want := []Params{
		{"a": 1, "b": "x"},
		{"a": 1, "b": "y"},
		{"a": 1, "b": "z"},
		{"a": 2, "b": "x"},
		{"a": 2, "b": "y"},
		{"a": 2, "b": "z"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("assignments mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandSubGrids(t *testing.T) {
	space := Grids{
		{"C": {0.1, 1.0}, "kernel": {"linear"}},
		{"C": {0.1, 1.0, 10.0}, "kernel": {"rbf"}, "gamma": {0.1, 0.5}},
	}

	got, err := Expand(space)
	if err != nil {
		t.Fatalf("Expand() failed: %v", err)
	}

	if len(got) != 2+6 {
		t.Fatalf("got %d assignments, want %d", len(got), 8)
	}
	// No cross-sub-grid combinations: linear assignments never carry gamma.
	for i, p := range got[:2] {
		if p["kernel"] != "linear" {
			t.Errorf("assignment %d: kernel = %v, want linear", i, p["kernel"])
		}
		if _, ok := p["gamma"]; ok {
			t.Errorf("assignment %d: linear sub-grid leaked gamma", i)
		}
	}
	for i, p := range got[2:] {
		if p["kernel"] != "rbf" {
			t.Errorf("assignment %d: kernel = %v, want rbf", i+2, p["kernel"])
		}
	}
}

func TestExpandInvalidSpace(t *testing.T) {
	tests := []struct {
		name  string
		space Space
	}{
		{name: "empty grid", space: Grid{}},
		{name: "empty value list", space: Grid{"a": {}}},
		{name: "empty grid in sequence", space: Grids{{"a": {1}}, {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Expand(tt.space)
			if err == nil {
				t.Fatal("expected error for malformed space")
			}
			if !errors.Is(err, ErrInvalidSpace) {
				t.Errorf("expected ErrInvalidSpace, got: %v", err)
			}
		})
	}
}

func TestParseSpaceSingleMapping(t *testing.T) {
	data := []byte("n_neighbors: [2, 3]\nweights: [uniform, distance]\n")

	space, err := ParseSpace(data)
	if err != nil {
		t.Fatalf("ParseSpace() failed: %v", err)
	}

	got, err := Expand(space)
	if err != nil {
		t.Fatalf("Expand() failed: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("got %d assignments, want 4", len(got))
	}
}

func TestParseSpaceSubGrids(t *testing.T) {
	data := []byte(`
- {C: [0.1, 1], kernel: [linear]}
- {C: [0.1, 1], kernel: [rbf], gamma: [auto, 0.5]}
`)

	space, err := ParseSpace(data)
	if err != nil {
		t.Fatalf("ParseSpace() failed: %v", err)
	}

	got, err := Expand(space)
	if err != nil {
		t.Fatalf("Expand() failed: %v", err)
	}
	if len(got) != 2+4 {
		t.Errorf("got %d assignments, want 6", len(got))
	}
}

func TestParseSpaceInvalid(t *testing.T) {
	_, err := ParseSpace([]byte("just a scalar"))
	if err == nil {
		t.Fatal("expected error for scalar document")
	}
	if !errors.Is(err, ErrInvalidSpace) {
		t.Errorf("expected ErrInvalidSpace, got: %v", err)
	}
}

func TestDefaultSpace(t *testing.T) {
	tests := []struct {
		family string
		want   int
	}{
		{family: "svc", want: 6 + 6*9},
		{family: "SVC", want: 6 + 6*9}, // case-insensitive
		{family: "knn", want: 4 * 2},
		{family: "qda", want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.family, func(t *testing.T) {
			space, err := DefaultSpace(tt.family)
			if err != nil {
				t.Fatalf("DefaultSpace(%q) failed: %v", tt.family, err)
			}
			got, err := Expand(space)
			if err != nil {
				t.Fatalf("Expand() failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d assignments, want %d", len(got), tt.want)
			}
		})
	}

	if _, err := DefaultSpace("perceptron"); !errors.Is(err, ErrUnsupportedFamily) {
		t.Errorf("expected ErrUnsupportedFamily, got: %v", err)
	}
}
