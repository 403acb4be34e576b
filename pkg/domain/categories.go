package domain

import "sort"

// CategoryStyle describes the presentation attributes associated with a
// chemical category. Icon names follow the material icon set used by client
// applications; Color is a hex RGB string.
type CategoryStyle struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Canonical category values recognised for styling and validation. Category
// remains free text: anything outside this set is accepted by the store and
// rendered with DefaultStyle.
const (
	CategoryAcid      = "Acid"
	CategoryBase      = "Base"
	CategorySolvent   = "Solvent"
	CategoryOxidizer  = "Oxidizer"
	CategoryFlammable = "Flammable"
	CategoryToxic     = "Toxic"
)

// DefaultStyle is used for categories outside the canonical set.
var DefaultStyle = CategoryStyle{Icon: "science", Color: "#9E9E9E"}

var categoryStyles = map[string]CategoryStyle{
	CategoryAcid:      {Icon: "water_drop", Color: "#E53935"},
	CategoryBase:      {Icon: "opacity", Color: "#1E88E5"},
	CategorySolvent:   {Icon: "local_drink", Color: "#8E24AA"},
	CategoryOxidizer:  {Icon: "local_fire_department", Color: "#FB8C00"},
	CategoryFlammable: {Icon: "whatshot", Color: "#F4511E"},
	CategoryToxic:     {Icon: "coronavirus", Color: "#43A047"},
}

// KnownCategory reports whether the category belongs to the canonical set.
func KnownCategory(category string) bool {
	_, ok := categoryStyles[category]
	return ok
}

// StyleFor returns the presentation style for a category, falling back to
// DefaultStyle for arbitrary values.
func StyleFor(category string) CategoryStyle {
	if style, ok := categoryStyles[category]; ok {
		return style
	}
	return DefaultStyle
}

// CanonicalCategories returns the canonical category names sorted ascending.
func CanonicalCategories() []string {
	out := make([]string, 0, len(categoryStyles))
	for name := range categoryStyles {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
