package models

// LayoutKind selects the rendering strategy for a template. It never
// affects pagination arithmetic, only visual accents.
type LayoutKind string

const (
	LayoutGrid     LayoutKind = "grid"
	LayoutList     LayoutKind = "list"
	LayoutShowcase LayoutKind = "showcase"
	LayoutMagazine LayoutKind = "magazine"
	LayoutMinimal  LayoutKind = "minimal"
)

// LayoutTemplate is a fixed page layout: how many items appear per page
// and their grid arrangement. Columns × Rows = ItemsPerPage for grid-like
// kinds; the showcase and list kinds relax that.
type LayoutTemplate struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	ItemsPerPage int        `json:"itemsPerPage"`
	Columns      int        `json:"columns"`
	Rows         int        `json:"rows"`
	Kind         LayoutKind `json:"kind"`
}

// templates is the fixed registry of page layouts offered to the user
var templates = []LayoutTemplate{
	{ID: "grid-4", Name: "Cuadrícula 2×2", ItemsPerPage: 4, Columns: 2, Rows: 2, Kind: LayoutGrid},
	{ID: "grid-9", Name: "Cuadrícula 3×3", ItemsPerPage: 9, Columns: 3, Rows: 3, Kind: LayoutGrid},
	{ID: "list-6", Name: "Lista", ItemsPerPage: 6, Columns: 1, Rows: 6, Kind: LayoutList},
	{ID: "showcase-1", Name: "Destacado", ItemsPerPage: 1, Columns: 1, Rows: 1, Kind: LayoutShowcase},
	{ID: "magazine-6", Name: "Revista 2×3", ItemsPerPage: 6, Columns: 2, Rows: 3, Kind: LayoutMagazine},
	{ID: "minimal-2", Name: "Minimalista", ItemsPerPage: 2, Columns: 2, Rows: 1, Kind: LayoutMinimal},
}

// Templates returns the full layout template registry
func Templates() []LayoutTemplate {
	out := make([]LayoutTemplate, len(templates))
	copy(out, templates)
	return out
}

// TemplateByID looks up a template by its identity
func TemplateByID(id string) (LayoutTemplate, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return LayoutTemplate{}, false
}

// DefaultTemplate returns the template used when no explicit choice was made
func DefaultTemplate() LayoutTemplate {
	return templates[0]
}
