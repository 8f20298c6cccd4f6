package gateway

import (
	"net/http"

	"github.com/samber/lo"

	"github.com/oxleaf/loadout/internal/extension"
	"github.com/oxleaf/loadout/internal/page"
	"github.com/oxleaf/loadout/internal/version"
)

// registerHTTPRoutes sets up all HTTP routes on the server mux. Everything
// under /api/ requires a bearer token when auth is enabled; /health and the
// WebSocket endpoint authenticate on their own terms.
func (s *Server) registerHTTPRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWebSocket)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/extensions", s.handleListExtensions)
	api.HandleFunc("POST /api/extensions", s.handleInstallExtension)
	api.HandleFunc("DELETE /api/extensions/{namespace}", s.handleRemoveExtension)
	api.HandleFunc("GET /api/addons", s.handleEnabledAddons)
	api.HandleFunc("POST /api/addons/enable", s.handleEnableAddon)
	api.HandleFunc("POST /api/addons/disable", s.handleDisableAddon)
	api.HandleFunc("GET /api/themes", s.handleListThemes)
	api.HandleFunc("POST /api/theme", s.handleSetTheme)
	mux.Handle("/api/", authMiddleware(api, s.auth, s.log))

	mux.HandleFunc("/", handleNotFound)
}

// registerRPCHandlers sets up all WebSocket RPC method handlers.
func (s *Server) registerRPCHandlers() {
	s.Handle("health", s.rpcHealth)
	s.Handle("extensions.list", s.rpcExtensionsList)
	s.Handle("addons.enabled", s.rpcAddonsEnabled)
	s.Handle("addon.enable", s.rpcAddonEnable)
	s.Handle("addon.disable", s.rpcAddonDisable)
	s.Handle("themes.list", s.rpcThemesList)
	s.Handle("theme.set", s.rpcThemeSet)
}

func (s *Server) rpcHealth(rc *RequestContext) {
	rc.Respond(HealthResponse{
		Status:     "ok",
		Version:    version.Version,
		Extensions: len(s.reg.Extensions()),
		Clients:    s.clients.Count(),
	})
}

func (s *Server) rpcExtensionsList(rc *RequestContext) {
	views := lo.Map(s.reg.Extensions(), func(e *extension.Extension, _ int) ExtensionView {
		return viewExtension(e)
	})
	rc.Respond(map[string]any{"extensions": views})
}

func (s *Server) rpcAddonsEnabled(rc *RequestContext) {
	rc.Respond(map[string]any{"enabled": s.reg.EnabledAddons()})
}

type rpcAddonParams struct {
	Addon   string `json:"addon"`
	Context string `json:"context,omitempty"`
}

func (p rpcAddonParams) pageContext() (page.Context, bool) {
	if p.Context == "" {
		return page.ContextLive, true
	}
	return page.ParseContext(p.Context)
}

func (s *Server) rpcAddonEnable(rc *RequestContext) {
	var p rpcAddonParams
	if err := rc.Params(&p); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if p.Addon == "" {
		rc.RespondError("invalid_params", "addon is required")
		return
	}
	pageCtx, ok := p.pageContext()
	if !ok {
		rc.RespondError("invalid_params", "unrecognized page context")
		return
	}

	if err := s.reg.EnableAddon(p.Addon, pageCtx); err != nil {
		rc.RespondError("enable_failed", err.Error())
		return
	}
	rc.Respond(map[string]any{"enabled": s.reg.EnabledAddons()})
}

func (s *Server) rpcAddonDisable(rc *RequestContext) {
	var p rpcAddonParams
	if err := rc.Params(&p); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if p.Addon == "" {
		rc.RespondError("invalid_params", "addon is required")
		return
	}
	pageCtx, ok := p.pageContext()
	if !ok {
		rc.RespondError("invalid_params", "unrecognized page context")
		return
	}

	if err := s.reg.DisableAddon(p.Addon, pageCtx); err != nil {
		rc.RespondError("disable_failed", err.Error())
		return
	}
	rc.Respond(map[string]any{"enabled": s.reg.EnabledAddons()})
}

func (s *Server) rpcThemesList(rc *RequestContext) {
	views := lo.Map(s.reg.Themes(), func(t *extension.Theme, _ int) ThemeView {
		return ThemeView{
			Name:        t.Name,
			Title:       t.Title,
			Description: t.Description,
			URL:         t.URL(),
		}
	})
	rc.Respond(map[string]any{"themes": views})
}

type rpcThemeParams struct {
	Theme string `json:"theme"`
}

func (s *Server) rpcThemeSet(rc *RequestContext) {
	var p rpcThemeParams
	if err := rc.Params(&p); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}

	if err := s.reg.LoadTheme(p.Theme); err != nil {
		rc.RespondError("theme_failed", err.Error())
		return
	}
	rc.Respond(map[string]any{"theme": p.Theme})
}
