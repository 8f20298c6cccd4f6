// Package extension models installed feature packages: namespace-scoped
// bundles of addons (per-context script/style hooks) and themes (single
// stylesheet swaps), built from validated manifests.
package extension

import (
	"github.com/oxleaf/loadout/internal/manifest"
)

// Extension is a namespace-scoped bundle of addons and themes, the unit of
// installation. Addon and theme names are meaningful only when qualified by
// the extension's namespace.
type Extension struct {
	Namespace string
	Author    string
	Version   string
	URL       string

	addons []*Addon
	themes []*Theme
}

// New builds an extension from a manifest. meta.namespace is required;
// author, version and url default to empty strings. Malformed addon and
// theme entries are skipped, not fatal: each skip lands in the returned
// report with its index and reason.
func New(m manifest.Manifest, roots Roots) (*Extension, *manifest.Report, error) {
	if m.Meta.Namespace == "" {
		return nil, nil, &ValidationError{Entity: "extension", Field: "meta.namespace"}
	}

	ext := &Extension{
		Namespace: m.Meta.Namespace,
		Author:    m.Meta.Author,
		Version:   m.Meta.Version,
		URL:       m.Meta.URL,
	}
	report := &manifest.Report{Namespace: ext.Namespace}

	addonRoot := roots.AddonRoot(ext.Namespace)
	for i, spec := range m.Addons {
		a, err := NewAddon(spec, addonRoot)
		if err != nil {
			report.Skip(manifest.KindAddon, i, spec.Name, err.Error())
			continue
		}
		ext.addons = append(ext.addons, a)
	}

	themeRoot := roots.ThemeRoot(ext.Namespace)
	for i, spec := range m.Themes {
		t, err := NewTheme(spec, themeRoot)
		if err != nil {
			report.Skip(manifest.KindTheme, i, spec.Name, err.Error())
			continue
		}
		ext.themes = append(ext.themes, t)
	}

	report.Addons = len(ext.addons)
	report.Themes = len(ext.themes)
	return ext, report, nil
}

// Addons returns the extension's addons in manifest order.
func (e *Extension) Addons() []*Addon {
	return e.addons
}

// Themes returns the extension's themes in manifest order.
func (e *Extension) Themes() []*Theme {
	return e.themes
}

// AddonByName returns the addon with the exact name, or nil. Lookup is
// local to this extension; namespace qualification happens in the registry.
func (e *Extension) AddonByName(name string) *Addon {
	for _, a := range e.addons {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// ThemeByName returns the theme with the exact name, or nil.
func (e *Extension) ThemeByName(name string) *Theme {
	for _, t := range e.themes {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// ToManifest serializes the extension back into manifest form: meta plus
// the serialization of every child. Feeding the result back through New
// yields an equivalent extension.
func (e *Extension) ToManifest() manifest.Manifest {
	m := manifest.Manifest{
		Meta: manifest.Meta{
			Namespace: e.Namespace,
			Author:    e.Author,
			Version:   e.Version,
			URL:       e.URL,
		},
	}
	for _, a := range e.addons {
		m.Addons = append(m.Addons, a.ToSpec())
	}
	for _, t := range e.themes {
		m.Themes = append(m.Themes, t.ToSpec())
	}
	return m
}
