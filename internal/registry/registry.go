// Package registry coordinates installed extensions: qualified-name
// resolution, the enabled-addon set, page-context-aware enable/disable
// orchestration, and persistence of both across sessions.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/samber/lo"

	"github.com/oxleaf/loadout/internal/extension"
	"github.com/oxleaf/loadout/internal/logging"
	"github.com/oxleaf/loadout/internal/manifest"
	"github.com/oxleaf/loadout/internal/page"
	"github.com/oxleaf/loadout/internal/store"
)

// FallbackTheme is the theme name LoadTheme falls back to. The design
// assumes a theme with this name is always registered; its absence is a
// hard failure.
const FallbackTheme = "vanilla"

// ErrNoDefaultTheme is returned by LoadTheme when neither the requested
// theme nor the fallback resolves.
var ErrNoDefaultTheme = errors.New("no default theme registered")

// Options configures a Registry. Zero-value fields get safe defaults:
// default roots, an in-memory document, scripts allowed, an in-memory
// store, and a silent logger.
type Options struct {
	Roots    extension.Roots
	Document page.Document
	Policy   extension.ScriptPolicy
	Store    store.KV
	Log      *logging.Logger
}

// Registry is the top-level store of loaded extensions. All collection
// mutations and their paired persistence writes happen under one mutex;
// the persisted state is always a full-collection rewrite.
type Registry struct {
	mu         sync.RWMutex
	extensions []*extension.Extension
	enabled    []string

	roots  extension.Roots
	doc    page.Document
	policy extension.ScriptPolicy
	kv     store.KV
	events *Events
	log    *logging.Logger
}

// New creates a Registry. Call Init to rehydrate persisted state.
func New(opts Options) *Registry {
	if opts.Roots == (extension.Roots{}) {
		opts.Roots = extension.DefaultRoots()
	}
	if opts.Document == nil {
		opts.Document = page.NewMemoryDocument()
	}
	if opts.Policy == nil {
		opts.Policy = extension.ScriptPolicyFunc(func() bool { return true })
	}
	if opts.Store == nil {
		opts.Store = store.NewMemory()
	}
	if opts.Log == nil {
		opts.Log = logging.Silent()
	}
	return &Registry{
		roots:  opts.Roots,
		doc:    opts.Document,
		policy: opts.Policy,
		kv:     opts.Store,
		events: NewEvents(opts.Log),
		log:    opts.Log.Sub("registry"),
	}
}

// Events returns the registry's event fan-out for subscribing.
func (r *Registry) Events() *Events {
	return r.events
}

// Init rehydrates extensions and the enabled-addon list from the store,
// prunes stale identifiers, and, if scripting is permitted, enables every
// previously enabled addon for the given page context.
func (r *Registry) Init(pageCtx page.Context) error {
	r.mu.Lock()

	manifests, err := r.readPersistedManifests()
	if err != nil {
		r.mu.Unlock()
		return fmt.Errorf("reading persisted extensions: %w", err)
	}
	enabled, err := r.readPersistedEnabled()
	if err != nil {
		r.mu.Unlock()
		return fmt.Errorf("reading persisted enabled addons: %w", err)
	}

	for _, m := range manifests {
		if m.Meta.Namespace == "" || r.findLocked(m.Meta.Namespace) != nil {
			r.log.Warn().Str("namespace", m.Meta.Namespace).Msg("skipping invalid persisted extension")
			continue
		}
		ext, report, err := extension.New(m, r.roots)
		if err != nil {
			r.log.Warn().Err(err).Msg("skipping unbuildable persisted extension")
			continue
		}
		if !report.Clean() {
			for _, s := range report.Skipped {
				r.log.Debug().Str("namespace", m.Meta.Namespace).Str("entry", s.String()).Msg("persisted entry skipped")
			}
		}
		r.extensions = append(r.extensions, ext)
	}

	r.enabled = enabled
	r.refreshLocked()
	err = r.persistLocked()

	allowed := r.policy.ScriptsAllowed()
	count := len(r.extensions)
	r.mu.Unlock()

	if err != nil {
		return err
	}

	r.log.Info().Int("extensions", count).Bool("scripting", allowed).Msg("registry initialized")
	if !allowed {
		return nil
	}
	return r.EnableAddons(pageCtx)
}

// Load registers an extension built from the given manifest. A manifest
// with no namespace, or whose namespace is already registered, is rejected
// as a no-op: the returned extension is nil and the registry is unchanged.
func (r *Registry) Load(m manifest.Manifest) (*extension.Extension, *manifest.Report, error) {
	if m.Meta.Namespace == "" {
		r.log.Warn().Msg("rejecting manifest without namespace")
		return nil, nil, nil
	}

	r.mu.Lock()
	if r.findLocked(m.Meta.Namespace) != nil {
		r.mu.Unlock()
		r.log.Warn().Str("namespace", m.Meta.Namespace).Msg("rejecting duplicate namespace")
		return nil, nil, nil
	}

	ext, report, err := extension.New(m, r.roots)
	if err != nil {
		r.mu.Unlock()
		return nil, nil, err
	}
	r.extensions = append(r.extensions, ext)
	err = r.persistLocked()
	r.mu.Unlock()

	for _, s := range report.Skipped {
		r.log.Debug().Str("namespace", ext.Namespace).Str("entry", s.String()).Msg("manifest entry skipped")
	}
	r.log.Info().Str("namespace", ext.Namespace).
		Int("addons", report.Addons).Int("themes", report.Themes).
		Msg("extension loaded")
	r.events.Emit(EventExtensionLoaded, map[string]any{
		"namespace": ext.Namespace,
		"addons":    report.Addons,
		"themes":    report.Themes,
	})
	return ext, report, err
}

// Extensions returns all loaded extensions in registration order.
func (r *Registry) Extensions() []*extension.Extension {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.extensions)
}

// Extension returns the extension with the given namespace, or nil.
func (r *Registry) Extension(namespace string) *extension.Extension {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findLocked(namespace)
}

// EnabledAddons returns the enabled-addon identifiers in persisted order.
func (r *Registry) EnabledAddons() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.enabled)
}

// GetAddonByName resolves a qualified addon identifier. Unqualified names
// resolve against the builtin namespace only; misses return nil.
func (r *Registry) GetAddonByName(id string) *extension.Addon {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolveAddonLocked(id)
}

// GetThemeByName resolves a qualified theme identifier, nil on miss.
func (r *Registry) GetThemeByName(id string) *extension.Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolveThemeLocked(id)
}

// Themes returns every theme across all extensions, registration order
// preserved.
func (r *Registry) Themes() []*extension.Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.FlatMap(r.extensions, func(e *extension.Extension, _ int) []*extension.Theme {
		return e.Themes()
	})
}

// RefreshEnabledAddons prunes enabled identifiers that no longer resolve
// to a real addon, then persists. This is the sole reconciliation point
// for stale, renamed, or removed addons; it is idempotent.
func (r *Registry) RefreshEnabledAddons() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshLocked()
	return r.persistLocked()
}

// EnableAddons enables every enabled-listed addon for the given page
// context, in persisted order. An identifier that fails to resolve here is
// a contract violation (callers refresh first) and aborts with an error.
func (r *Registry) EnableAddons(pageCtx page.Context) error {
	for _, id := range r.EnabledAddons() {
		addon := r.GetAddonByName(id)
		if addon == nil {
			return fmt.Errorf("enabled addon %q does not resolve; refresh the enabled list first", id)
		}
		if err := addon.Enable(r.doc, pageCtx, r.policy); err != nil {
			return fmt.Errorf("enabling addon %q: %w", id, err)
		}
		r.events.Emit(EventAddonEnabled, map[string]any{"addon": id, "context": string(pageCtx)})
	}
	return nil
}

// EnableAddon enables one addon by qualified identifier and records it in
// the enabled set. Unknown identifiers fail with a suggestion when a near
// match exists; a scripting-disabled policy surfaces as
// extension.ErrScriptingDisabled with no state change.
func (r *Registry) EnableAddon(id string, pageCtx page.Context) error {
	addon := r.GetAddonByName(id)
	if addon == nil {
		return r.unknownAddonError(id)
	}
	if err := addon.Enable(r.doc, pageCtx, r.policy); err != nil {
		return err
	}
	if err := r.AddAddon(id); err != nil {
		return err
	}
	r.log.Info().Str("addon", id).Str("context", string(pageCtx)).Msg("addon enabled")
	r.events.Emit(EventAddonEnabled, map[string]any{"addon": id, "context": string(pageCtx)})
	return nil
}

// DisableAddon disables one addon and removes it from the enabled set.
// Disabling never consults the scripting policy.
func (r *Registry) DisableAddon(id string, pageCtx page.Context) error {
	addon := r.GetAddonByName(id)
	if addon == nil {
		return r.unknownAddonError(id)
	}
	addon.Disable(r.doc, pageCtx)
	if err := r.RemoveAddon(id); err != nil {
		return err
	}
	r.log.Info().Str("addon", id).Str("context", string(pageCtx)).Msg("addon disabled")
	r.events.Emit(EventAddonDisabled, map[string]any{"addon": id, "context": string(pageCtx)})
	return nil
}

// AddAddon appends an identifier to the enabled set (no duplicates), then
// refreshes and persists. Unresolvable identifiers are pruned by the
// refresh, so adding one is a persisted no-op.
func (r *Registry) AddAddon(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.enabled, id) {
		r.enabled = append(r.enabled, id)
	}
	r.refreshLocked()
	return r.persistLocked()
}

// RemoveAddon removes an identifier from the enabled set, then refreshes
// and persists.
func (r *Registry) RemoveAddon(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = lo.Without(r.enabled, id)
	r.refreshLocked()
	return r.persistLocked()
}

// RemoveExtension disables every addon of the matching extension (global
// and current-context hooks unloaded), removes it from the registry, and
// persists. Returns false when no extension matched.
func (r *Registry) RemoveExtension(namespace string, pageCtx page.Context) (bool, error) {
	r.mu.Lock()
	kept := r.extensions[:0]
	removed := false
	for _, ext := range r.extensions {
		if ext.Namespace != namespace {
			kept = append(kept, ext)
			continue
		}
		removed = true
		for _, a := range ext.Addons() {
			a.Disable(r.doc, pageCtx)
		}
	}
	r.extensions = kept

	var err error
	if removed {
		r.refreshLocked()
		err = r.persistLocked()
	}
	r.mu.Unlock()

	if removed {
		r.log.Info().Str("namespace", namespace).Msg("extension removed")
		r.events.Emit(EventExtensionRemoved, map[string]any{"namespace": namespace})
	}
	return removed, err
}

// LoadTheme activates the named theme, falling back to the theme literally
// named "vanilla" when the requested one does not resolve. An empty name
// requests the fallback directly. Fails with ErrNoDefaultTheme when even
// the fallback is absent.
func (r *Registry) LoadTheme(name string) error {
	if name == "" {
		name = FallbackTheme
	}

	r.mu.RLock()
	theme := r.resolveThemeLocked(name)
	if theme == nil {
		for _, ext := range r.extensions {
			if t := ext.ThemeByName(FallbackTheme); t != nil {
				theme = t
				break
			}
		}
	}
	r.mu.RUnlock()

	if theme == nil {
		return fmt.Errorf("%w: theme %q not found and no %q theme exists", ErrNoDefaultTheme, name, FallbackTheme)
	}

	theme.Load(r.doc)
	r.log.Info().Str("theme", theme.Name).Str("url", theme.URL()).Msg("theme activated")
	r.events.Emit(EventThemeChanged, map[string]any{"theme": theme.Name, "url": theme.URL()})
	return nil
}

// SuggestAddon returns the closest known qualified addon identifier to id,
// or "" when nothing is plausibly close.
func (r *Registry) SuggestAddon(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	best, bestDist := "", maxSuggestDistance+1
	for _, ext := range r.extensions {
		for _, a := range ext.Addons() {
			qualified := Qualify(ext.Namespace, a.Name)
			if d := levenshtein.ComputeDistance(id, qualified); d < bestDist {
				best, bestDist = qualified, d
			}
			// Builtin addons are also addressable unqualified.
			if ext.Namespace == extension.BuiltinNamespace {
				if d := levenshtein.ComputeDistance(id, a.Name); d < bestDist {
					best, bestDist = a.Name, d
				}
			}
		}
	}
	return best
}

// maxSuggestDistance bounds how fuzzy a "did you mean" match may be.
const maxSuggestDistance = 3

func (r *Registry) unknownAddonError(id string) error {
	if hint := r.SuggestAddon(id); hint != "" {
		return fmt.Errorf("unknown addon %q (did you mean %q?)", id, hint)
	}
	return fmt.Errorf("unknown addon %q", id)
}

// --- internal, caller holds r.mu ---

func (r *Registry) findLocked(namespace string) *extension.Extension {
	for _, ext := range r.extensions {
		if ext.Namespace == namespace {
			return ext
		}
	}
	return nil
}

func (r *Registry) resolveAddonLocked(id string) *extension.Addon {
	ns, name, ok := ParseIdentifier(id)
	if !ok {
		return nil
	}
	if ext := r.findLocked(ns); ext != nil {
		return ext.AddonByName(name)
	}
	return nil
}

func (r *Registry) resolveThemeLocked(id string) *extension.Theme {
	ns, name, ok := ParseIdentifier(id)
	if !ok {
		return nil
	}
	if ext := r.findLocked(ns); ext != nil {
		return ext.ThemeByName(name)
	}
	return nil
}

func (r *Registry) refreshLocked() {
	r.enabled = lo.Filter(r.enabled, func(id string, _ int) bool {
		return r.resolveAddonLocked(id) != nil
	})
}

// persistLocked rewrites both persisted collections in full.
func (r *Registry) persistLocked() error {
	manifests := make([]manifest.Manifest, 0, len(r.extensions))
	for _, ext := range r.extensions {
		manifests = append(manifests, ext.ToManifest())
	}
	extData, err := json.Marshal(manifests)
	if err != nil {
		return fmt.Errorf("serializing extensions: %w", err)
	}
	if err := r.kv.Set(store.KeyExtensions, extData); err != nil {
		return fmt.Errorf("persisting extensions: %w", err)
	}

	enabled := r.enabled
	if enabled == nil {
		enabled = []string{}
	}
	enabledData, err := json.Marshal(enabled)
	if err != nil {
		return fmt.Errorf("serializing enabled addons: %w", err)
	}
	if err := r.kv.Set(store.KeyEnabledAddons, enabledData); err != nil {
		return fmt.Errorf("persisting enabled addons: %w", err)
	}
	return nil
}

// readPersistedManifests loads the stored extension list. Absent or
// malformed data is treated as empty (and re-persisted as such by Init);
// a store read failure is an error so Init never overwrites state it
// could not read.
func (r *Registry) readPersistedManifests() ([]manifest.Manifest, error) {
	data, ok, err := r.kv.Get(store.KeyExtensions)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var manifests []manifest.Manifest
	if err := json.Unmarshal(data, &manifests); err != nil {
		r.log.Warn().Err(err).Msg("persisted extensions malformed; resetting to empty")
		return nil, nil
	}
	return manifests, nil
}

func (r *Registry) readPersistedEnabled() ([]string, error) {
	data, ok, err := r.kv.Get(store.KeyEnabledAddons)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var enabled []string
	if err := json.Unmarshal(data, &enabled); err != nil {
		r.log.Warn().Err(err).Msg("persisted enabled addons malformed; resetting to empty")
		return nil, nil
	}
	return enabled, nil
}
