package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	f, err := NewRequest("r1", "addon.enable", map[string]string{"addon": "acme:x"})
	require.NoError(t, err)

	assert.Equal(t, FrameTypeRequest, f.Type)
	assert.Equal(t, "r1", f.ID)
	assert.Equal(t, "addon.enable", f.Method)

	var params map[string]string
	require.NoError(t, json.Unmarshal(f.Params, &params))
	assert.Equal(t, "acme:x", params["addon"])
}

func TestNewResponse(t *testing.T) {
	f, err := NewResponse("r1", map[string]bool{"done": true})
	require.NoError(t, err)

	assert.Equal(t, FrameTypeResponse, f.Type)
	require.NotNil(t, f.OK)
	assert.True(t, *f.OK)
	assert.Nil(t, f.Error)
}

func TestNewErrorResponse(t *testing.T) {
	f := NewErrorResponse("r1", ErrorShape{Code: "unauthorized", Message: "token required"})

	assert.Equal(t, FrameTypeResponse, f.Type)
	require.NotNil(t, f.OK)
	assert.False(t, *f.OK)
	require.NotNil(t, f.Error)
	assert.Equal(t, "unauthorized", f.Error.Code)
}

func TestNewEvent(t *testing.T) {
	f, err := NewEvent("addon_enabled", map[string]string{"addon": "acme:x"}, 7)
	require.NoError(t, err)

	assert.Equal(t, FrameTypeEvent, f.Type)
	assert.Equal(t, "addon_enabled", f.Event)
	assert.Equal(t, int64(7), f.Seq)
}

func TestFrameRoundTrip(t *testing.T) {
	f, err := NewRequest("r2", "health", nil)
	require.NoError(t, err)

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var decoded Frame
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, f.Type, decoded.Type)
	assert.Equal(t, f.ID, decoded.ID)
	assert.Equal(t, f.Method, decoded.Method)
}
