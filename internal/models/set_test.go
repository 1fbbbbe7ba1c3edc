// ABOUTME: Tests for the per-set column codec.
// ABOUTME: Covers joined output, legacy parsing, and malformed values.
package models

import "testing"

func TestJoinSets(t *testing.T) {
	sets := []Set{{Reps: 12, Weight: 50}}
	if got := JoinReps(sets); got != "12" {
		t.Errorf("JoinReps = %q, want 12", got)
	}
	if got := JoinWeights(sets); got != "50" {
		t.Errorf("JoinWeights = %q, want 50", got)
	}

	fractional := []Set{{Reps: 5, Weight: 92.5}, {Reps: 5, Weight: 0}}
	if got := JoinWeights(fractional); got != "92.5,0" {
		t.Errorf("JoinWeights = %q, want 92.5,0", got)
	}

	if got := JoinReps(nil); got != "" {
		t.Errorf("JoinReps(nil) = %q, want empty", got)
	}
}

func TestParseSets(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		reps    string
		weights string
		want    []Set
	}{
		{
			name:    "aligned columns",
			count:   3,
			reps:    "10,10,8",
			weights: "100,100,95",
			want:    []Set{{Reps: 10, Weight: 100}, {Reps: 10, Weight: 100}, {Reps: 8, Weight: 95}},
		},
		{
			name:    "count larger than columns",
			count:   2,
			reps:    "12",
			weights: "",
			want:    []Set{{Reps: 12}, {}},
		},
		{
			name:    "columns longer than count",
			count:   1,
			reps:    "5, 5",
			weights: "60,62.5",
			want:    []Set{{Reps: 5, Weight: 60}, {Reps: 5, Weight: 62.5}},
		},
		{
			name:    "malformed values read as zero",
			count:   2,
			reps:    "x,7",
			weights: "40,?",
			want:    []Set{{Reps: 0, Weight: 40}, {Reps: 7, Weight: 0}},
		},
		{
			name:    "empty",
			count:   0,
			reps:    "",
			weights: "",
			want:    []Set{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSets(tt.count, tt.reps, tt.weights)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d (%v)", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("set %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCatalogCategoriesResolve(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range DefaultCategories {
		names[c.Name] = true
	}
	if len(DefaultCategories) != 7 {
		t.Errorf("expected 7 categories, got %d", len(DefaultCategories))
	}
	if len(DefaultExercises) != 17 {
		t.Errorf("expected 17 exercises, got %d", len(DefaultExercises))
	}
	for _, e := range DefaultExercises {
		if !names[e.Category] {
			t.Errorf("exercise %s references unknown category %s", e.Name, e.Category)
		}
	}
}
