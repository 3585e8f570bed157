package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	frame, err := NewRequest("req-1", "view.bind", map[string]any{
		"viewId":    "sidebar",
		"sessionId": "s1",
	})
	require.NoError(t, err)

	assert.Equal(t, FrameTypeRequest, frame.Type)
	assert.Equal(t, "req-1", frame.ID)
	assert.Equal(t, "view.bind", frame.Method)

	var params map[string]any
	require.NoError(t, json.Unmarshal(frame.Params, &params))
	assert.Equal(t, "sidebar", params["viewId"])
}

func TestNewResponse(t *testing.T) {
	frame, err := NewResponse("req-2", map[string]string{"status": "ok"})
	require.NoError(t, err)

	assert.Equal(t, FrameTypeResponse, frame.Type)
	assert.Equal(t, "req-2", frame.ID)
	require.NotNil(t, frame.OK)
	assert.True(t, *frame.OK)
	assert.Nil(t, frame.Error)
}

func TestNewErrorResponse(t *testing.T) {
	frame := NewErrorResponse("req-3", ErrorShape{
		Code:    "invalid_params",
		Message: "sessionId is required",
	})

	assert.Equal(t, FrameTypeResponse, frame.Type)
	assert.Equal(t, "req-3", frame.ID)
	require.NotNil(t, frame.OK)
	assert.False(t, *frame.OK)
	require.NotNil(t, frame.Error)
	assert.Equal(t, "invalid_params", frame.Error.Code)
}

func TestNewEvent(t *testing.T) {
	frame, err := NewEvent("session.state", map[string]any{"isStreaming": true}, 42)
	require.NoError(t, err)

	assert.Equal(t, FrameTypeEvent, frame.Type)
	assert.Equal(t, "session.state", frame.Event)
	assert.Equal(t, int64(42), frame.Seq)
	assert.Empty(t, frame.ID)
}

func TestFrameRoundTrip(t *testing.T) {
	frame, err := NewRequest("req-9", "engine.chunk", map[string]any{
		"conversationId": 7,
		"sessionId":      "s1",
		"content":        "hello",
	})
	require.NoError(t, err)

	raw, err := json.Marshal(frame)
	require.NoError(t, err)

	var decoded Frame
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, frame.Type, decoded.Type)
	assert.Equal(t, frame.ID, decoded.ID)
	assert.Equal(t, frame.Method, decoded.Method)
	assert.JSONEq(t, string(frame.Params), string(decoded.Params))
}

func TestFrameOmitsEmptyFields(t *testing.T) {
	frame, err := NewEvent("connect.challenge", map[string]any{"nonce": "n"}, 0)
	require.NoError(t, err)

	raw, err := json.Marshal(frame)
	require.NoError(t, err)

	var asMap map[string]any
	require.NoError(t, json.Unmarshal(raw, &asMap))
	assert.NotContains(t, asMap, "id")
	assert.NotContains(t, asMap, "method")
	assert.NotContains(t, asMap, "ok")
	assert.NotContains(t, asMap, "error")
	assert.NotContains(t, asMap, "seq")
}
