package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("serper.endpoint", "https://example.test/search"))

	val, ok := store.Get("serper.endpoint")
	assert.True(t, ok)
	assert.Equal(t, "https://example.test/search", val)

	_, ok = store.Get("serper.api_key")
	assert.False(t, ok)
}

func TestConfigStore_NewConfigStoreFrom_CopiesInput(t *testing.T) {
	seed := map[string]any{"search.concurrency": 8}
	store := NewConfigStoreFrom(seed)
	seed["search.concurrency"] = 1

	assert.Equal(t, 8, store.GetInt("search.concurrency"))
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStoreFrom(map[string]any{
		"str":   "value",
		"int":   7,
		"int64": int64(9),
		"float": 2.0,
	})

	assert.Equal(t, "value", store.GetString("str"))
	assert.Empty(t, store.GetString("int"))

	assert.Equal(t, 7, store.GetInt("int"))
	assert.Equal(t, 9, store.GetInt("int64"))
	assert.Equal(t, 2, store.GetInt("float"))
	assert.Zero(t, store.GetInt("str"))
}

func TestConfigStore_NoOps(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("search.concurrency", i)
		}()
		go func() {
			defer wg.Done()
			_ = store.GetInt("search.concurrency")
		}()
	}
	wg.Wait()

	_, ok := store.Get("search.concurrency")
	assert.True(t, ok)
}
