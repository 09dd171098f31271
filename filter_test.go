package main

import (
	"testing"
)

var filterProjects = []Project{
	{Title: "Maple Street Kitchen", Category: "Kitchen", Location: "Austin", Year: 2023},
	{Title: "Oak Avenue Bath", Category: "Bath", Location: "Dallas", Year: 2021},
	{Title: "Cedar Deck", Category: "Outdoor", Location: "Austin", Year: 2023},
}

func TestProjectFilterSubstring(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"empty matches all", "", []string{"Maple Street Kitchen", "Oak Avenue Bath", "Cedar Deck"}},
		{"title substring", "maple", []string{"Maple Street Kitchen"}},
		{"case insensitive", "OAK", []string{"Oak Avenue Bath"}},
		{"category", "outdoor", []string{"Cedar Deck"}},
		{"location", "austin", []string{"Maple Street Kitchen", "Cedar Deck"}},
		{"year", "2021", []string{"Oak Avenue Bath"}},
		{"no match", "garage", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterProjects(filterProjects, tt.query)
			if len(got) != len(tt.expected) {
				t.Fatalf("FilterProjects(%q) returned %d projects, want %d", tt.query, len(got), len(tt.expected))
			}
			for i, p := range got {
				if p.Title != tt.expected[i] {
					t.Errorf("result[%d] = %q, want %q", i, p.Title, tt.expected[i])
				}
			}
		})
	}
}

func TestProjectFilterGlob(t *testing.T) {
	got := FilterProjects(filterProjects, "oak*")
	if len(got) != 1 || got[0].Title != "Oak Avenue Bath" {
		t.Errorf("glob query matched %v", got)
	}

	// A ? wildcard matches exactly one character
	got = FilterProjects(filterProjects, "bat?")
	if len(got) != 1 || got[0].Title != "Oak Avenue Bath" {
		t.Errorf("? wildcard matched %v", got)
	}
}

func TestProjectFilterInvalidPatternFallsBack(t *testing.T) {
	// An unclosed bracket fails to compile; substring matching takes over
	got := FilterProjects(filterProjects, "[oak")
	if len(got) != 0 {
		t.Errorf("unmatched bracket query matched %v", got)
	}
}

func TestProjectFilterEmpty(t *testing.T) {
	f := NewProjectFilter("   ")
	if !f.Empty() {
		t.Error("whitespace-only query must be empty")
	}
	if !f.Match(Project{Title: "anything"}) {
		t.Error("empty filter must match everything")
	}
}
