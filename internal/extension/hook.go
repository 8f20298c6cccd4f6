package extension

import (
	"github.com/oxleaf/loadout/internal/manifest"
	"github.com/oxleaf/loadout/internal/page"
)

// Hook is the set of style and script resources injected for one page
// context. It exclusively owns the handles of the elements it has injected:
// the handle list mirrors exactly what has been loaded and not yet unloaded.
type Hook struct {
	Styles  []string
	Scripts []string

	base     string
	elements []page.Element
}

// NewHook builds a hook from a manifest spec. A nil spec yields an empty
// hook, which loads and unloads as a no-op.
func NewHook(spec *manifest.HookSpec, base string) *Hook {
	h := &Hook{base: base}
	if spec != nil {
		h.Styles = append(h.Styles, spec.Styles...)
		h.Scripts = append(h.Scripts, spec.Scripts...)
	}
	return h
}

// Load injects every resource into the document: stylesheets under the
// head, then scripts under the body, preserving input order within each
// kind. Resource URLs are the hook's base path concatenated with the
// resource path; no normalization and no existence check.
func (h *Hook) Load(doc page.Document) {
	for _, s := range h.Styles {
		h.elements = append(h.elements, doc.AppendStyleSheet(h.base+s))
	}
	for _, s := range h.Scripts {
		h.elements = append(h.elements, doc.AppendScript(h.base+s))
	}
}

// Unload removes every tracked element and clears the tracked list.
// Best-effort: removing a script element cannot undo page mutations the
// script already performed. Calling Unload on a never-loaded hook is a
// no-op.
func (h *Hook) Unload(doc page.Document) {
	for _, el := range h.elements {
		doc.Remove(el)
	}
	h.elements = nil
}

// Elements returns the currently injected element handles.
func (h *Hook) Elements() []page.Element {
	return h.elements
}

// ToSpec serializes the hook's resource paths. Live element handles are
// never serialized, and the returned slices are copies so spec mutation
// cannot reach the hook.
func (h *Hook) ToSpec() manifest.HookSpec {
	return manifest.HookSpec{
		Styles:  append([]string(nil), h.Styles...),
		Scripts: append([]string(nil), h.Scripts...),
	}
}

// specOrNil returns a pointer spec for serialization, or nil if the hook
// lists no resources.
func (h *Hook) specOrNil() *manifest.HookSpec {
	if len(h.Styles) == 0 && len(h.Scripts) == 0 {
		return nil
	}
	spec := h.ToSpec()
	return &spec
}
