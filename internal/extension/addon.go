package extension

import (
	"github.com/oxleaf/loadout/internal/manifest"
	"github.com/oxleaf/loadout/internal/page"
)

// ScriptPolicy gates addon script injection. It is consulted on every
// Enable call, never cached, so a configuration flip takes effect on the
// next enable.
type ScriptPolicy interface {
	ScriptsAllowed() bool
}

// ScriptPolicyFunc adapts a function to the ScriptPolicy interface.
type ScriptPolicyFunc func() bool

func (f ScriptPolicyFunc) ScriptsAllowed() bool { return f() }

// Addon is a named unit of injectable behavior: one hook per page context
// plus a context-independent global hook, enabled and disabled as a unit.
type Addon struct {
	Name         string
	Title        string
	Description  string
	Requirements []string

	hooks  map[page.Context]*Hook
	global *Hook
}

// NewAddon builds an addon from a manifest spec. The name is required;
// title defaults to the name. Hook resource paths resolve under root.
func NewAddon(spec manifest.AddonSpec, root string) (*Addon, error) {
	if spec.Name == "" {
		return nil, &ValidationError{Entity: "addon", Field: "name"}
	}

	title := spec.Title
	if title == "" {
		title = spec.Name
	}

	return &Addon{
		Name:         spec.Name,
		Title:        title,
		Description:  spec.Description,
		Requirements: append([]string(nil), spec.Requirements...),
		hooks: map[page.Context]*Hook{
			page.ContextLive:     NewHook(spec.Live, root),
			page.ContextEditor:   NewHook(spec.Editor, root),
			page.ContextHistory:  NewHook(spec.History, root),
			page.ContextSettings: NewHook(spec.Settings, root),
		},
		global: NewHook(spec.Global, root),
	}, nil
}

// HookFor returns the hook for the given page context, or nil for an
// unrecognized context.
func (a *Addon) HookFor(ctx page.Context) *Hook {
	return a.hooks[ctx]
}

// Global returns the context-independent hook.
func (a *Addon) Global() *Hook {
	return a.global
}

// Enable loads the global hook plus the hook for the current page context.
// It fails with ErrScriptingDisabled before loading anything when the
// policy forbids scripts. An unrecognized context still loads the global
// hook.
//
// The context is whatever the page shows at call time; an addon enabled in
// one context and disabled in another will target the wrong per-context
// hook, so callers must disable before a context change.
func (a *Addon) Enable(doc page.Document, ctx page.Context, policy ScriptPolicy) error {
	if !policy.ScriptsAllowed() {
		return ErrScriptingDisabled
	}
	a.global.Load(doc)
	if h := a.HookFor(ctx); h != nil {
		h.Load(doc)
	}
	return nil
}

// Disable unloads the global hook and the hook for the current page
// context. No policy check: disabling is always allowed.
func (a *Addon) Disable(doc page.Document, ctx page.Context) {
	a.global.Unload(doc)
	if h := a.HookFor(ctx); h != nil {
		h.Unload(doc)
	}
}

// ToSpec serializes the addon for persistence.
//
// The global hook is intentionally absent: the persisted addon shape has
// never carried it, so a rehydrated addon gets an empty global hook even
// when the installing manifest defined one. Kept as-is to avoid changing
// the persisted-state shape under existing installs.
func (a *Addon) ToSpec() manifest.AddonSpec {
	return manifest.AddonSpec{
		Name:         a.Name,
		Title:        a.Title,
		Description:  a.Description,
		Live:         a.hooks[page.ContextLive].specOrNil(),
		Editor:       a.hooks[page.ContextEditor].specOrNil(),
		History:      a.hooks[page.ContextHistory].specOrNil(),
		Settings:     a.hooks[page.ContextSettings].specOrNil(),
		Requirements: append([]string(nil), a.Requirements...),
	}
}
