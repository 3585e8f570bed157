package coordinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewRegistry_RegisterAndGet(t *testing.T) {
	r := NewViewRegistry()

	v := r.Register("sidebar")
	assert.Equal(t, "sidebar", v.ViewID)
	assert.False(t, v.Bound())

	got, ok := r.Get("sidebar")
	require.True(t, ok)
	assert.Equal(t, v, got)

	_, ok = r.Get("nonexistent")
	assert.False(t, ok)
}

func TestViewRegistry_RegisterIdempotent(t *testing.T) {
	r := NewViewRegistry()
	r.Register("sidebar")
	r.Bind("sidebar", key1)

	// Re-registering must return the existing state unchanged
	v := r.Register("sidebar")
	assert.Equal(t, key1, v.Key)
	assert.Equal(t, 1, r.Count())
}

func TestViewRegistry_BindUnknownViewIsNoop(t *testing.T) {
	r := NewViewRegistry()
	r.Bind("ghost", key1)

	_, ok := r.Get("ghost")
	assert.False(t, ok, "bind must not create a view")
}

func TestViewRegistry_GetReturnsCopy(t *testing.T) {
	r := NewViewRegistry()
	r.Register("sidebar")

	v, _ := r.Get("sidebar")
	v.Key = key1

	got, _ := r.Get("sidebar")
	assert.False(t, got.Bound())
}

func TestViewRegistry_Unregister(t *testing.T) {
	r := NewViewRegistry()
	r.Register("sidebar")
	r.Unregister("sidebar")

	_, ok := r.Get("sidebar")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Count())

	// Unregistering twice is harmless
	r.Unregister("sidebar")
}
