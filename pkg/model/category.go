package model

import "strings"

// Category is a semantic classification for lanes and nodes. It is derived
// once per lane from the lane label and drives the background color chosen
// by renderers. Nodes inherit their owning lane's category; free-standing
// nodes get CategoryDefault.
type Category string

// The fixed category vocabulary.
const (
	CategoryPresentation   Category = "presentation"
	CategoryApplication    Category = "application"
	CategoryDomain         Category = "domain"
	CategoryInfrastructure Category = "infrastructure"
	CategoryState          Category = "state"
	CategoryDefault        Category = "default"
)

// categoryRules maps label substrings to categories. Rules are evaluated
// top-to-bottom, so the order of this table is the priority order:
// presentation > application > domain > infrastructure > state.
var categoryRules = []struct {
	substr string
	cat    Category
}{
	{"presentation", CategoryPresentation},
	{"application", CategoryApplication},
	{"domain", CategoryDomain},
	{"infrastructure", CategoryInfrastructure},
	{"state", CategoryState},
}

// DetectCategory classifies a lane label by case-insensitive substring
// search over the fixed vocabulary. The first matching rule wins; labels
// matching no rule fall back to CategoryDefault.
func DetectCategory(label string) Category {
	lower := strings.ToLower(label)
	for _, r := range categoryRules {
		if strings.Contains(lower, r.substr) {
			return r.cat
		}
	}
	return CategoryDefault
}

// Fill returns the background color (hex) renderers use for the category.
func (c Category) Fill() string {
	switch c {
	case CategoryPresentation:
		return "#bfdbfe"
	case CategoryApplication:
		return "#bbf7d0"
	case CategoryDomain:
		return "#fde68a"
	case CategoryInfrastructure:
		return "#ddd6fe"
	case CategoryState:
		return "#fecaca"
	default:
		return "#e5e7eb"
	}
}

// Stroke returns the border color (hex) paired with Fill.
func (c Category) Stroke() string {
	switch c {
	case CategoryPresentation:
		return "#1d4ed8"
	case CategoryApplication:
		return "#15803d"
	case CategoryDomain:
		return "#b45309"
	case CategoryInfrastructure:
		return "#6d28d9"
	case CategoryState:
		return "#b91c1c"
	default:
		return "#4b5563"
	}
}
