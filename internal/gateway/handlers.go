package gateway

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/samber/lo"

	"github.com/oxleaf/loadout/internal/extension"
	"github.com/oxleaf/loadout/internal/manifest"
	"github.com/oxleaf/loadout/internal/page"
	"github.com/oxleaf/loadout/internal/version"
)

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version,omitempty"`
	Extensions int    `json:"extensions,omitempty"`
	Clients    int    `json:"clients,omitempty"`
}

// AddonView is the JSON shape of an addon in API responses.
type AddonView struct {
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
}

// ThemeView is the JSON shape of a theme in API responses.
type ThemeView struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}

// ExtensionView is the JSON shape of an installed extension.
type ExtensionView struct {
	Namespace string      `json:"namespace"`
	Author    string      `json:"author,omitempty"`
	Version   string      `json:"version,omitempty"`
	URL       string      `json:"url,omitempty"`
	Addons    []AddonView `json:"addons"`
	Themes    []ThemeView `json:"themes"`
}

func viewExtension(e *extension.Extension) ExtensionView {
	return ExtensionView{
		Namespace: e.Namespace,
		Author:    e.Author,
		Version:   e.Version,
		URL:       e.URL,
		Addons: lo.Map(e.Addons(), func(a *extension.Addon, _ int) AddonView {
			return AddonView{
				Name:         a.Name,
				Title:        a.Title,
				Description:  a.Description,
				Requirements: a.Requirements,
			}
		}),
		Themes: lo.Map(e.Themes(), func(t *extension.Theme, _ int) ThemeView {
			return ThemeView{
				Name:        t.Name,
				Title:       t.Title,
				Description: t.Description,
				URL:         t.URL(),
			}
		}),
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// pageContextOf reads the "context" query parameter, defaulting to live.
func pageContextOf(r *http.Request) (page.Context, bool) {
	raw := r.URL.Query().Get("context")
	if raw == "" {
		return page.ContextLive, true
	}
	return page.ParseContext(raw)
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		Version:    version.Version,
		Extensions: len(s.reg.Extensions()),
		Clients:    s.clients.Count(),
	})
}

// handleListExtensions returns every installed extension.
func (s *Server) handleListExtensions(w http.ResponseWriter, r *http.Request) {
	views := lo.Map(s.reg.Extensions(), func(e *extension.Extension, _ int) ExtensionView {
		return viewExtension(e)
	})
	writeJSON(w, http.StatusOK, map[string]any{"extensions": views})
}

// handleInstallExtension loads a manifest posted as the request body.
func (s *Server) handleInstallExtension(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading body: "+err.Error())
		return
	}

	m, err := manifest.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ext, report, err := s.reg.Load(m)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if ext == nil {
		writeError(w, http.StatusConflict, "manifest rejected: missing or duplicate namespace")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"extension": viewExtension(ext),
		"report":    report,
	})
}

// handleRemoveExtension uninstalls the extension named in the path.
func (s *Server) handleRemoveExtension(w http.ResponseWriter, r *http.Request) {
	pageCtx, ok := pageContextOf(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "unrecognized page context")
		return
	}

	removed, err := s.reg.RemoveExtension(r.PathValue("namespace"), pageCtx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "no such extension")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"removed": true})
}

// handleEnabledAddons returns the persisted enabled-addon identifiers.
func (s *Server) handleEnabledAddons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"enabled": s.reg.EnabledAddons()})
}

type addonActionRequest struct {
	Addon   string `json:"addon"`
	Context string `json:"context,omitempty"`
}

func (req addonActionRequest) pageContext() (page.Context, bool) {
	if req.Context == "" {
		return page.ContextLive, true
	}
	return page.ParseContext(req.Context)
}

// handleEnableAddon enables an addon for the requested page context.
func (s *Server) handleEnableAddon(w http.ResponseWriter, r *http.Request) {
	var req addonActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	if req.Addon == "" {
		writeError(w, http.StatusBadRequest, "addon is required")
		return
	}
	pageCtx, ok := req.pageContext()
	if !ok {
		writeError(w, http.StatusBadRequest, "unrecognized page context")
		return
	}

	if err := s.reg.EnableAddon(req.Addon, pageCtx); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"enabled": s.reg.EnabledAddons()})
}

// handleDisableAddon disables an addon for the requested page context.
func (s *Server) handleDisableAddon(w http.ResponseWriter, r *http.Request) {
	var req addonActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	if req.Addon == "" {
		writeError(w, http.StatusBadRequest, "addon is required")
		return
	}
	pageCtx, ok := req.pageContext()
	if !ok {
		writeError(w, http.StatusBadRequest, "unrecognized page context")
		return
	}

	if err := s.reg.DisableAddon(req.Addon, pageCtx); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"enabled": s.reg.EnabledAddons()})
}

// handleListThemes returns every registered theme.
func (s *Server) handleListThemes(w http.ResponseWriter, r *http.Request) {
	views := lo.Map(s.reg.Themes(), func(t *extension.Theme, _ int) ThemeView {
		return ThemeView{
			Name:        t.Name,
			Title:       t.Title,
			Description: t.Description,
			URL:         t.URL(),
		}
	})
	writeJSON(w, http.StatusOK, map[string]any{"themes": views})
}

type themeRequest struct {
	Theme string `json:"theme"`
}

// handleSetTheme activates the named theme.
func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	if err := s.reg.LoadTheme(req.Theme); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"theme": req.Theme})
}

// handleNotFound returns a 404 for unknown routes.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error": "not found",
		"path":  r.URL.Path,
	})
}

// RequestHandler processes an incoming RPC request frame from a client.
type RequestHandler func(ctx *RequestContext)

// RequestContext carries everything an RPC handler needs.
type RequestContext struct {
	Client *Client
	Frame  Frame
	Server *Server
}

// Respond sends a success response.
func (rc *RequestContext) Respond(payload any) {
	if err := rc.Client.Respond(rc.Frame.ID, payload); err != nil {
		rc.Server.log.Warn().Err(err).Str("method", rc.Frame.Method).Msg("failed to send response")
	}
}

// RespondError sends an error response.
func (rc *RequestContext) RespondError(code, message string) {
	rc.Client.RespondError(rc.Frame.ID, ErrorShape{
		Code:    code,
		Message: message,
	})
}

// Params unmarshals the request params into the given target.
func (rc *RequestContext) Params(target any) error {
	if rc.Frame.Params == nil {
		return nil
	}
	return json.Unmarshal(rc.Frame.Params, target)
}
