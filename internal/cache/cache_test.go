package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueryCacheExpiry(t *testing.T) {
	c := New()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("short", "v1", time.Millisecond)
	c.Set("forever", "v2", 0)

	v, ok := c.Get("short")
	assert.True(t, ok)
	assert.Equal(t, "v1", v)

	time.Sleep(5 * time.Millisecond)
	_, ok = c.Get("short")
	assert.False(t, ok, "expired entries must not be served")

	v, ok = c.Get("forever")
	assert.True(t, ok)
	assert.Equal(t, "v2", v)

	assert.Equal(t, 2, c.Len())
	c.Clear()
	assert.Zero(t, c.Len())
	_, ok = c.Get("forever")
	assert.False(t, ok)
}
