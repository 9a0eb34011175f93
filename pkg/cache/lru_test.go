package cache_test

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/cache"
)

func TestLRU_GetPut(t *testing.T) {
	t.Run("returns stored values", func(t *testing.T) {
		c := cache.NewLRU[string, int](3)
		c.Put("a", 1)
		c.Put("b", 2)

		v, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, v)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("reports missing keys", func(t *testing.T) {
		c := cache.NewLRU[string, int](3)

		v, ok := c.Get("missing")
		assert.False(t, ok)
		assert.Zero(t, v)
	})

	t.Run("overwrites existing keys", func(t *testing.T) {
		c := cache.NewLRU[string, int](3)
		c.Put("a", 1)
		c.Put("a", 2)

		v, _ := c.Get("a")
		assert.Equal(t, 2, v)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("panics on non-positive capacity", func(t *testing.T) {
		assert.Panics(t, func() { cache.NewLRU[string, int](0) })
	})
}

func TestLRU_Eviction(t *testing.T) {
	t.Run("evicts least recently used entry", func(t *testing.T) {
		c := cache.NewLRU[string, int](2)
		c.Put("a", 1)
		c.Put("b", 2)
		c.Get("a")
		c.Put("c", 3)

		_, ok := c.Get("b")
		assert.False(t, ok, "b was the least recently used entry")

		_, ok = c.Get("a")
		assert.True(t, ok)
		_, ok = c.Get("c")
		assert.True(t, ok)
		assert.Equal(t, 2, c.Len())
	})
}

func TestLRU_GetOrCompute(t *testing.T) {
	t.Run("computes once and reuses the result", func(t *testing.T) {
		c := cache.NewLRU[string, int](4)
		calls := 0
		compute := func(k string) (int, error) {
			calls++
			return strconv.Atoi(k)
		}

		v, err := c.GetOrCompute("42", compute)
		require.NoError(t, err)
		assert.Equal(t, 42, v)

		v, err = c.GetOrCompute("42", compute)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
		assert.Equal(t, 1, calls)
	})

	t.Run("does not cache failures", func(t *testing.T) {
		c := cache.NewLRU[string, int](4)
		boom := errors.New("boom")

		_, err := c.GetOrCompute("x", func(string) (int, error) { return 0, boom })
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		c := cache.NewLRU[int, int](16)
		var wg sync.WaitGroup
		for i := range 64 {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				v, err := c.GetOrCompute(n%8, func(k int) (int, error) { return k * 2, nil })
				assert.NoError(t, err)
				assert.Equal(t, (n%8)*2, v)
			}(i)
		}
		wg.Wait()
		assert.Equal(t, 8, c.Len())
	})
}
