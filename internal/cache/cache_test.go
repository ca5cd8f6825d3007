package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(time.Minute)

	key := c.generateKey(`{"platform":"Twitter"}`)
	_, found := c.Get(key)
	assert.False(t, found)

	c.Set(key, []byte(`{"emotion":"Happy"}`))
	data, found := c.Get(key)
	require.True(t, found)
	assert.Equal(t, []byte(`{"emotion":"Happy"}`), data)
	assert.Equal(t, 1, c.Size())
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10 * time.Millisecond)

	c.Set("key", []byte("data"))
	_, found := c.Get("key")
	require.True(t, found)

	time.Sleep(20 * time.Millisecond)
	_, found = c.Get("key")
	assert.False(t, found)
}

func TestCacheClear(t *testing.T) {
	c := NewCache(time.Minute)

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	require.Equal(t, 2, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestGenerateKeyStable(t *testing.T) {
	c := NewCache(time.Minute)

	assert.Equal(t, c.generateKey("body"), c.generateKey("body"))
	assert.NotEqual(t, c.generateKey("body"), c.generateKey("other"))
}
