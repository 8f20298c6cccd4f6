package cli

import (
	"fmt"

	"github.com/oxleaf/loadout/internal/config"
	"github.com/oxleaf/loadout/internal/extension"
	"github.com/oxleaf/loadout/internal/page"
	"github.com/oxleaf/loadout/internal/registry"
	"github.com/oxleaf/loadout/internal/store"
)

// runtime bundles the loaded config and an initialized registry for one
// command invocation.
type runtime struct {
	cfg config.Config
	reg *registry.Registry
}

// openRuntime loads config, opens the configured state store, and builds an
// initialized registry. The returned cleanup closes the store.
func openRuntime(pageCtx page.Context) (*runtime, func(), error) {
	cfg, err := config.Load(paths.Config)
	if err != nil {
		return nil, nil, err
	}

	var kv store.KV
	cleanup := func() {}
	switch cfg.Store.Backend {
	case "memory":
		kv = store.NewMemory()
	default:
		path := cfg.Store.Path
		if path == "" {
			path = paths.State
		}
		if err := paths.EnsureDirs(); err != nil {
			return nil, nil, err
		}
		db, err := store.OpenSQLite(path, log)
		if err != nil {
			return nil, nil, fmt.Errorf("opening state store: %w", err)
		}
		kv = db
		cleanup = func() { db.Close() }
	}

	reg := registry.New(registry.Options{
		Roots: extension.Roots{
			BuiltinAddons: cfg.Roots.BuiltinAddons,
			BuiltinThemes: cfg.Roots.BuiltinThemes,
			ExtensionBase: cfg.Roots.ExtensionBase,
		},
		Policy: extension.ScriptPolicyFunc(cfg.Scripting.Allowed),
		Store:  kv,
		Log:    log,
	})
	if err := reg.Init(pageCtx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("initializing registry: %w", err)
	}

	return &runtime{cfg: cfg, reg: reg}, cleanup, nil
}

// parsePageContext maps the --context flag, defaulting to live.
func parsePageContext(raw string) (page.Context, error) {
	if raw == "" {
		return page.ContextLive, nil
	}
	ctx, ok := page.ParseContext(raw)
	if !ok {
		return "", fmt.Errorf("unrecognized page context %q (valid: live, editor, history, settings)", raw)
	}
	return ctx, nil
}
