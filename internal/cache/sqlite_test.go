package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCacheMissThenHit(t *testing.T) {
	c := newTestCache(t)

	_, ok, err := c.Get("never stored")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put("some text", []byte(`{"city":"Lahore"}`)))

	data, ok, err := c.Get("some text")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"city":"Lahore"}`, string(data))
}

func TestCachePutReplaces(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.Put("key", []byte(`{"v":1}`)))
	require.NoError(t, c.Put("key", []byte(`{"v":2}`)))

	data, ok, err := c.Get("key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"v":2}`, string(data))
}
