package gateway

import (
	"testing"

	"github.com/soyeahso/switchboard/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	return NewClient(nil, ClientInfo{ID: "test", Mode: "surface"}, AuthResult{OK: true, Method: "token"}, logging.New(nil, "silent"))
}

func TestClientViewOwnership(t *testing.T) {
	c := testClient()

	assert.Empty(t, c.Views())

	c.AddView("sidebar")
	c.AddView("float")
	assert.ElementsMatch(t, []string{"sidebar", "float"}, c.Views())

	c.RemoveView("sidebar")
	assert.Equal(t, []string{"float"}, c.Views())

	// Removing an unknown view is a no-op
	c.RemoveView("ghost")
	assert.Equal(t, []string{"float"}, c.Views())
}

func TestClientOwnedOf(t *testing.T) {
	c := testClient()
	c.AddView("a")
	c.AddView("c")

	// Filters to owned views, preserving input order
	assert.Equal(t, []string{"a", "c"}, c.OwnedOf([]string{"a", "b", "c"}))
	assert.Equal(t, []string{"c", "a"}, c.OwnedOf([]string{"c", "x", "a"}))
	assert.Nil(t, c.OwnedOf([]string{"x", "y"}))
	assert.Nil(t, c.OwnedOf(nil))
}

func TestClientSendAfterClose(t *testing.T) {
	c := testClient()
	c.closed = true // simulate a closed connection without a real socket

	err := c.Send(Frame{Type: FrameTypeEvent, Event: "session.state"})
	assert.ErrorIs(t, err, ErrClientClosed)
}

func TestClientRegistry(t *testing.T) {
	reg := NewClientRegistry(logging.New(nil, "silent"))

	c1 := testClient()
	c2 := testClient()

	reg.Add(c1)
	reg.Add(c2)
	assert.Equal(t, 2, reg.Count())

	got, ok := reg.Get(c1.ConnID)
	require.True(t, ok)
	assert.Equal(t, c1.ConnID, got.ConnID)

	assert.Len(t, reg.List(), 2)

	reg.Remove(c1.ConnID)
	assert.Equal(t, 1, reg.Count())
	_, ok = reg.Get(c1.ConnID)
	assert.False(t, ok)
}
