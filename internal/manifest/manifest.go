// Package manifest defines the extension manifest schema and its parsing.
//
// Manifests are untrusted input: every field except meta.namespace,
// addons[].name and themes[].{name,style} is optional, and malformed
// addon/theme entries are skipped (with a report entry) rather than failing
// the whole extension.
package manifest

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Manifest is the root of an extension package description.
type Manifest struct {
	Meta   Meta        `json:"meta" yaml:"meta"`
	Addons []AddonSpec `json:"addons,omitempty" yaml:"addons,omitempty"`
	Themes []ThemeSpec `json:"themes,omitempty" yaml:"themes,omitempty"`
}

// Meta carries extension identity. Namespace is the only required field;
// it must be unique across the registry.
type Meta struct {
	Namespace string `json:"namespace" yaml:"namespace"`
	Author    string `json:"author,omitempty" yaml:"author,omitempty"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
	URL       string `json:"url,omitempty" yaml:"url,omitempty"`
}

// HookSpec lists the style and script resources a hook injects for one
// page context. Paths are relative to the extension's resolved addon root.
type HookSpec struct {
	Styles  []string `json:"styles,omitempty" yaml:"styles,omitempty"`
	Scripts []string `json:"scripts,omitempty" yaml:"scripts,omitempty"`
}

// Empty reports whether the spec lists no resources at all.
func (h HookSpec) Empty() bool {
	return len(h.Styles) == 0 && len(h.Scripts) == 0
}

// AddonSpec describes one addon inside a manifest.
//
// Global is accepted on input but deliberately absent from persisted addon
// serializations; see extension.Addon.ToSpec.
type AddonSpec struct {
	Name         string    `json:"name" yaml:"name"`
	Title        string    `json:"title,omitempty" yaml:"title,omitempty"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
	Live         *HookSpec `json:"live,omitempty" yaml:"live,omitempty"`
	Editor       *HookSpec `json:"editor,omitempty" yaml:"editor,omitempty"`
	History      *HookSpec `json:"history,omitempty" yaml:"history,omitempty"`
	Settings     *HookSpec `json:"settings,omitempty" yaml:"settings,omitempty"`
	Global       *HookSpec `json:"global,omitempty" yaml:"global,omitempty"`
	Requirements []string  `json:"requirements,omitempty" yaml:"requirements,omitempty"`
}

// ThemeSpec describes one theme inside a manifest. Name and Style are both
// required.
type ThemeSpec struct {
	Name        string `json:"name" yaml:"name"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Style       string `json:"style" yaml:"style"`
}

// The custom unmarshalers below make addon/theme/hook entries tolerant:
// an entry that is not a mapping (or has wrong-typed fields) decodes to its
// zero value instead of failing the whole manifest. Zero-value entries are
// then skipped with a report entry during extension construction.

func (a *AddonSpec) UnmarshalJSON(data []byte) error {
	type plain AddonSpec
	var tmp plain
	if err := json.Unmarshal(data, &tmp); err != nil {
		*a = AddonSpec{}
		return nil
	}
	*a = AddonSpec(tmp)
	return nil
}

func (a *AddonSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain AddonSpec
	var tmp plain
	if err := node.Decode(&tmp); err != nil {
		*a = AddonSpec{}
		return nil
	}
	*a = AddonSpec(tmp)
	return nil
}

func (t *ThemeSpec) UnmarshalJSON(data []byte) error {
	type plain ThemeSpec
	var tmp plain
	if err := json.Unmarshal(data, &tmp); err != nil {
		*t = ThemeSpec{}
		return nil
	}
	*t = ThemeSpec(tmp)
	return nil
}

func (t *ThemeSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain ThemeSpec
	var tmp plain
	if err := node.Decode(&tmp); err != nil {
		*t = ThemeSpec{}
		return nil
	}
	*t = ThemeSpec(tmp)
	return nil
}

func (h *HookSpec) UnmarshalJSON(data []byte) error {
	type plain HookSpec
	var tmp plain
	if err := json.Unmarshal(data, &tmp); err != nil {
		*h = HookSpec{}
		return nil
	}
	*h = HookSpec(tmp)
	return nil
}

func (h *HookSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain HookSpec
	var tmp plain
	if err := node.Decode(&tmp); err != nil {
		*h = HookSpec{}
		return nil
	}
	*h = HookSpec(tmp)
	return nil
}
