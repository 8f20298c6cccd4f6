package extension

import (
	"github.com/oxleaf/loadout/internal/manifest"
	"github.com/oxleaf/loadout/internal/page"
)

// Theme is a named single-stylesheet visual variant. Loading a theme is a
// global operation: the document has one active-theme slot system-wide.
type Theme struct {
	Name        string
	Title       string
	Description string
	Style       string

	root string
}

// NewTheme builds a theme from a manifest spec. Name and style are both
// required; title defaults to the name.
func NewTheme(spec manifest.ThemeSpec, root string) (*Theme, error) {
	if spec.Name == "" {
		return nil, &ValidationError{Entity: "theme", Field: "name"}
	}
	if spec.Style == "" {
		return nil, &ValidationError{Entity: "theme", Field: "style"}
	}

	title := spec.Title
	if title == "" {
		title = spec.Name
	}

	return &Theme{
		Name:        spec.Name,
		Title:       title,
		Description: spec.Description,
		Style:       spec.Style,
		root:        root,
	}, nil
}

// URL returns the fully resolved stylesheet URL.
func (t *Theme) URL() string {
	return t.root + t.Style
}

// Load retargets the document's active-theme stylesheet to this theme,
// replacing whichever theme was active before.
func (t *Theme) Load(doc page.Document) {
	doc.SetActiveTheme(t.URL())
}

// ToSpec serializes the theme for persistence.
func (t *Theme) ToSpec() manifest.ThemeSpec {
	return manifest.ThemeSpec{
		Name:        t.Name,
		Title:       t.Title,
		Description: t.Description,
		Style:       t.Style,
	}
}
