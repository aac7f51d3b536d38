package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCache returns a cache whose clock the test controls.
func newTestCache() (*TTLCache, *time.Time) {
	current := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	c := New()
	c.now = func() time.Time { return current }
	return c, &current
}

func TestGetReturnsLiveEntry(t *testing.T) {
	c, _ := newTestCache()
	c.Set("accounts:u1:all", []string{"a"}, time.Minute)

	v, ok := c.Get("accounts:u1:all")
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, v)
}

func TestGetExpiresEntries(t *testing.T) {
	c, clock := newTestCache()
	c.Set("accounts:u1:all", "v", 5*time.Minute)

	*clock = clock.Add(5*time.Minute + time.Second)

	_, ok := c.Get("accounts:u1:all")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size(), "expired entry should be dropped on read")
}

func TestSetDefaultTTL(t *testing.T) {
	c, clock := newTestCache()
	c.Set("k", "v", 0)

	*clock = clock.Add(DefaultTTL - time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	*clock = clock.Add(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestInvalidateByPrefix(t *testing.T) {
	c, _ := newTestCache()
	c.Set("accounts:u1:all", "a", time.Minute)
	c.Set("accounts:u1:active=true", "b", time.Minute)
	c.Set("accounts:u2:all", "c", time.Minute)
	c.Set("transactions:u1:l=100", "d", time.Minute)

	c.Invalidate("accounts:u1:")

	_, ok := c.Get("accounts:u1:all")
	assert.False(t, ok)
	_, ok = c.Get("accounts:u1:active=true")
	assert.False(t, ok)

	// Other owners and entities stay.
	_, ok = c.Get("accounts:u2:all")
	assert.True(t, ok)
	_, ok = c.Get("transactions:u1:l=100")
	assert.True(t, ok)
}

func TestInvalidateSweepsExpired(t *testing.T) {
	c, clock := newTestCache()
	c.Set("a:u1:x", "v", time.Minute)
	c.Set("b:u1:x", "v", time.Minute)

	*clock = clock.Add(2 * time.Minute)
	c.Invalidate("nomatch:")

	assert.Equal(t, 0, c.Size())
}
