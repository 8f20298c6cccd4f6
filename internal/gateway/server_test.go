package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxleaf/loadout/internal/config"
	"github.com/oxleaf/loadout/internal/logging"
	"github.com/oxleaf/loadout/internal/manifest"
	"github.com/oxleaf/loadout/internal/page"
	"github.com/oxleaf/loadout/internal/registry"
)

const testToken = "test-token-123"

func testServer(t *testing.T) (*registry.Registry, *httptest.Server) {
	t.Helper()
	cfg := config.Defaults()
	cfg.Gateway.Auth.Token = testToken

	reg := registry.New(registry.Options{})
	srv := New(cfg, reg, logging.Silent())

	mux := http.NewServeMux()
	srv.registerHTTPRoutes(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return reg, ts
}

func loadAcme(t *testing.T, reg *registry.Registry) {
	t.Helper()
	_, _, err := reg.Load(manifest.Manifest{
		Meta: manifest.Meta{Namespace: "acme"},
		Addons: []manifest.AddonSpec{
			{Name: "x", Live: &manifest.HookSpec{Styles: []string{"s.css"}}},
		},
		Themes: []manifest.ThemeSpec{
			{Name: "dark", Style: "dark.css"},
		},
	})
	require.NoError(t, err)
}

func apiRequest(t *testing.T, ts *httptest.Server, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	_, ts := testServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
}

func TestNotFoundEndpoint(t *testing.T) {
	_, ts := testServer(t)

	resp, err := http.Get(ts.URL + "/nonexistent")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIRequiresToken(t *testing.T) {
	_, ts := testServer(t)

	resp, err := http.Get(ts.URL + "/api/extensions")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListExtensions(t *testing.T) {
	reg, ts := testServer(t)
	loadAcme(t, reg)

	resp := apiRequest(t, ts, http.MethodGet, "/api/extensions", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Extensions []ExtensionView `json:"extensions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Extensions, 1)
	assert.Equal(t, "acme", body.Extensions[0].Namespace)
	require.Len(t, body.Extensions[0].Addons, 1)
	assert.Equal(t, "x", body.Extensions[0].Addons[0].Name)
	require.Len(t, body.Extensions[0].Themes, 1)
	assert.Equal(t, "/ext/acme/packs/dark.css", body.Extensions[0].Themes[0].URL)
}

func TestInstallExtension(t *testing.T) {
	reg, ts := testServer(t)

	resp := apiRequest(t, ts, http.MethodPost, "/api/extensions", map[string]any{
		"meta":   map[string]string{"namespace": "widgets"},
		"addons": []map[string]string{{"name": "clock"}},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, reg.Extensions(), 1)

	// Installing the same namespace again conflicts.
	resp = apiRequest(t, ts, http.MethodPost, "/api/extensions", map[string]any{
		"meta": map[string]string{"namespace": "widgets"},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestInstallExtension_BadJSON(t *testing.T) {
	_, ts := testServer(t)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/extensions", strings.NewReader("{nope"))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+testToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRemoveExtension(t *testing.T) {
	reg, ts := testServer(t)
	loadAcme(t, reg)

	resp := apiRequest(t, ts, http.MethodDelete, "/api/extensions/acme", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, reg.Extensions())

	resp = apiRequest(t, ts, http.MethodDelete, "/api/extensions/acme", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEnableDisableAddon(t *testing.T) {
	reg, ts := testServer(t)
	loadAcme(t, reg)

	resp := apiRequest(t, ts, http.MethodPost, "/api/addons/enable", addonActionRequest{Addon: "acme:x", Context: "live"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"acme:x"}, reg.EnabledAddons())

	resp = apiRequest(t, ts, http.MethodPost, "/api/addons/disable", addonActionRequest{Addon: "acme:x", Context: "live"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, reg.EnabledAddons())
}

func TestEnableAddon_Unknown(t *testing.T) {
	reg, ts := testServer(t)
	loadAcme(t, reg)

	resp := apiRequest(t, ts, http.MethodPost, "/api/addons/enable", addonActionRequest{Addon: "acme:y"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "did you mean")
}

func TestEnableAddon_BadContext(t *testing.T) {
	reg, ts := testServer(t)
	loadAcme(t, reg)

	resp := apiRequest(t, ts, http.MethodPost, "/api/addons/enable", addonActionRequest{Addon: "acme:x", Context: "bogus"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSetTheme(t *testing.T) {
	reg, ts := testServer(t)
	loadAcme(t, reg)

	resp := apiRequest(t, ts, http.MethodPost, "/api/theme", themeRequest{Theme: "acme:dark"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = apiRequest(t, ts, http.MethodPost, "/api/theme", themeRequest{Theme: "missing"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func dialWS(t *testing.T, ts *httptest.Server, token string) (*websocket.Conn, Frame) {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	connect, err := NewRequest("c1", "connect", ConnectParams{
		Client: ClientInfo{ID: "test-client", Version: "0.0.1"},
		Token:  token,
	})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(connect))

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var reply Frame
	require.NoError(t, conn.ReadJSON(&reply))
	return conn, reply
}

func TestWebSocketHandshake(t *testing.T) {
	_, ts := testServer(t)

	_, reply := dialWS(t, ts, testToken)
	require.Equal(t, FrameTypeResponse, reply.Type)
	require.NotNil(t, reply.OK)
	assert.True(t, *reply.OK)

	var hello HelloOK
	require.NoError(t, json.Unmarshal(reply.Payload, &hello))
	assert.Equal(t, ProtocolVersion, hello.Protocol)
	assert.NotEmpty(t, hello.Server.ConnID)
	assert.Contains(t, hello.Features.Methods, "addon.enable")
	assert.Contains(t, hello.Features.Events, registry.EventAddonEnabled)
}

func TestWebSocketHandshake_BadToken(t *testing.T) {
	_, ts := testServer(t)

	_, reply := dialWS(t, ts, "wrong")
	require.NotNil(t, reply.OK)
	assert.False(t, *reply.OK)
	require.NotNil(t, reply.Error)
	assert.Equal(t, "unauthorized", reply.Error.Code)
}

func TestWebSocketRPC(t *testing.T) {
	reg, ts := testServer(t)
	loadAcme(t, reg)

	conn, _ := dialWS(t, ts, testToken)

	req, err := NewRequest("r1", "addon.enable", rpcAddonParams{Addon: "acme:x", Context: "live"})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(req))

	// The enable broadcasts an event to this client and answers the
	// request; order between the two is not fixed.
	var response *Frame
	var event *Frame
	for response == nil || event == nil {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var f Frame
		require.NoError(t, conn.ReadJSON(&f))
		switch f.Type {
		case FrameTypeResponse:
			f := f
			response = &f
		case FrameTypeEvent:
			f := f
			event = &f
		}
	}

	require.NotNil(t, response.OK)
	assert.True(t, *response.OK)
	assert.Equal(t, registry.EventAddonEnabled, event.Event)
	assert.Equal(t, []string{"acme:x"}, reg.EnabledAddons())
}

func TestWebSocketEventFeed(t *testing.T) {
	reg, ts := testServer(t)

	conn, _ := dialWS(t, ts, testToken)

	// A request round-trip guarantees the server finished registering this
	// client before anything is broadcast.
	req, err := NewRequest("r0", "health", nil)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(req))
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var health Frame
	require.NoError(t, conn.ReadJSON(&health))
	require.Equal(t, FrameTypeResponse, health.Type)

	loadAcme(t, reg)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var f Frame
	require.NoError(t, conn.ReadJSON(&f))
	assert.Equal(t, FrameTypeEvent, f.Type)
	assert.Equal(t, registry.EventExtensionLoaded, f.Event)

	var data map[string]any
	require.NoError(t, json.Unmarshal(f.Payload, &data))
	assert.Equal(t, "acme", data["namespace"])
}

func TestMethodNotFound(t *testing.T) {
	_, ts := testServer(t)

	conn, _ := dialWS(t, ts, testToken)

	req, err := NewRequest("r1", "bogus.method", nil)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(req))

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var reply Frame
	require.NoError(t, conn.ReadJSON(&reply))
	require.NotNil(t, reply.Error)
	assert.Equal(t, "method_not_found", reply.Error.Code)
}

func TestPageContextOf(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/extensions", nil)
	ctx, ok := pageContextOf(req)
	assert.True(t, ok)
	assert.Equal(t, page.ContextLive, ctx)

	req = httptest.NewRequest("GET", "/api/extensions?context=editor", nil)
	ctx, ok = pageContextOf(req)
	assert.True(t, ok)
	assert.Equal(t, page.ContextEditor, ctx)

	req = httptest.NewRequest("GET", "/api/extensions?context=bogus", nil)
	_, ok = pageContextOf(req)
	assert.False(t, ok)
}
