package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	store := New()
	store.Set("key1", "bar")
	store.Set("key2", 1024)

	value, ok := store.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "bar", value)

	assert.True(t, store.Has("key2"))
	assert.Equal(t, 2, store.Len())
	assert.ElementsMatch(t, []string{"key1", "key2"}, store.Keys())

	store.Del("key1")
	_, ok = store.Get("key1")
	assert.False(t, ok)

	store.Clear()
	assert.Equal(t, 0, store.Len())
}

func TestMemoryConcurrency(t *testing.T) {
	store := New()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				store.Set("shared", j)
				store.Get("shared")
				store.Has("shared")
			}
		}()
	}
	wg.Wait()
	assert.True(t, store.Has("shared"))
}
