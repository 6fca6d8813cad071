package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	cache := New(time.Minute)

	cache.Set("trending", `{"page":1}`)

	value, ok := cache.Get("trending")
	assert.True(t, ok)
	assert.Equal(t, `{"page":1}`, value)

	_, ok = cache.Get("missing")
	assert.False(t, ok)
}

func TestCacheExpiration(t *testing.T) {
	cache := New(time.Minute)

	cache.SetWithTTL("short", "value", -time.Second)

	_, ok := cache.Get("short")
	assert.False(t, ok, "expired entries must not be returned")
}

func TestCacheDeleteAndClear(t *testing.T) {
	cache := New(time.Minute)

	cache.Set("a", "1")
	cache.Set("b", "2")

	cache.Delete("a")
	_, ok := cache.Get("a")
	assert.False(t, ok)

	cache.Clear()
	_, ok = cache.Get("b")
	assert.False(t, ok)
}
