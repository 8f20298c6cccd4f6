package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxleaf/loadout/internal/config"
)

func TestResolveAuth_ConfigWins(t *testing.T) {
	t.Setenv("LOADOUT_GATEWAY_TOKEN", "env-token")

	auth := ResolveAuth(config.GatewayAuth{Token: "cfg-token"})
	assert.Equal(t, "cfg-token", auth.Token)
	assert.True(t, auth.Enabled())
}

func TestResolveAuth_EnvFallback(t *testing.T) {
	t.Setenv("LOADOUT_GATEWAY_TOKEN", "env-token")

	auth := ResolveAuth(config.GatewayAuth{})
	assert.Equal(t, "env-token", auth.Token)
}

func TestAuthorize_Disabled(t *testing.T) {
	result := Authorize(ResolvedAuth{}, "")
	assert.True(t, result.OK)
}

func TestAuthorize_TokenMatch(t *testing.T) {
	auth := ResolvedAuth{Token: "secret"}

	assert.True(t, Authorize(auth, "secret").OK)

	result := Authorize(auth, "wrong")
	assert.False(t, result.OK)
	assert.Equal(t, "token_mismatch", result.Reason)

	result = Authorize(auth, "")
	assert.False(t, result.OK)
	assert.Equal(t, "token required", result.Reason)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Empty(t, bearerToken("Basic abc"))
	assert.Empty(t, bearerToken(""))
	assert.Empty(t, bearerToken("abc"))
}

func TestSafeEqual(t *testing.T) {
	assert.True(t, safeEqual("token", "token"))
	assert.False(t, safeEqual("token", "Token"))
	assert.False(t, safeEqual("token", "token2"))
	assert.False(t, safeEqual("", "token"))
	assert.True(t, safeEqual("", ""))
}
