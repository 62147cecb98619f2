package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestCacheExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[string, []string](5*time.Minute, clock.Now)

	c.Set("tags", []string{"go", "react"})
	got, ok := c.Get("tags")
	require.True(t, ok)
	assert.Equal(t, []string{"go", "react"}, got)

	clock.Advance(4*time.Minute + 59*time.Second)
	_, ok = c.Get("tags")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok = c.Get("tags")
	assert.False(t, ok, "entry expires exactly at the TTL")
}

func TestCachePurge(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	c := New[int, string](time.Minute, clock.Now)

	c.Set(1, "a")
	c.SetWithTTL(2, "b", time.Hour)
	clock.Advance(2 * time.Minute)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 1, c.Purge())
	assert.Equal(t, 1, c.Len())

	v, ok := c.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "b", v)
}

func TestCacheTakeAndDelete(t *testing.T) {
	c := New[string, int](time.Minute, nil)
	c.Set("x", 1)
	c.Set("y", 2)

	v, ok := c.Take("x")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = c.Take("x")
	assert.False(t, ok)

	c.Delete("y")
	assert.Equal(t, 0, c.Len())

	c.Set("z", 3)
	c.Clear()
	_, ok = c.Get("z")
	assert.False(t, ok)
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New[int, int](time.Minute, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(j, i)
				c.Get(j)
				c.Purge()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 100, c.Len())
}
