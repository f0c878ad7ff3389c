package model

import "testing"

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		label string
		want  Category
	}{
		{"Presentation Layer", CategoryPresentation},
		{"APPLICATION services", CategoryApplication},
		{"core domain", CategoryDomain},
		{"Infrastructure", CategoryInfrastructure},
		{"State Stores", CategoryState},
		{"Something Else", CategoryDefault},
		{"", CategoryDefault},
	}
	for _, tt := range tests {
		if got := DetectCategory(tt.label); got != tt.want {
			t.Errorf("DetectCategory(%q) = %s, want %s", tt.label, got, tt.want)
		}
	}
}

func TestDetectCategoryPriorityOrder(t *testing.T) {
	// When several vocabulary words occur, the earlier table entry wins.
	if got := DetectCategory("domain presentation"); got != CategoryPresentation {
		t.Errorf("got %s, want %s", got, CategoryPresentation)
	}
	if got := DetectCategory("state infrastructure"); got != CategoryInfrastructure {
		t.Errorf("got %s, want %s", got, CategoryInfrastructure)
	}
}

func TestCategoryColors(t *testing.T) {
	cats := []Category{
		CategoryPresentation, CategoryApplication, CategoryDomain,
		CategoryInfrastructure, CategoryState, CategoryDefault,
	}
	seen := make(map[string]Category)
	for _, c := range cats {
		fill := c.Fill()
		if fill == "" || fill[0] != '#' {
			t.Errorf("%s: fill %q is not a hex color", c, fill)
		}
		if prev, dup := seen[fill]; dup {
			t.Errorf("%s and %s share fill %s", c, prev, fill)
		}
		seen[fill] = c
		if c.Stroke() == "" {
			t.Errorf("%s: empty stroke", c)
		}
	}
}
