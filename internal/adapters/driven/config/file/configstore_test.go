package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "halda")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DefaultDirName, "config.toml"), store.Path())
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("serper.api_key", "abc"))
	require.NoError(t, store.Set("search.concurrency", 4))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[serper]")
	assert.Contains(t, string(raw), "api_key = 'abc'")
	assert.Contains(t, string(raw), "[search]")
}

func TestConfigStore_Persistence(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("serper.api_key", "abc"))
	require.NoError(t, store.Set("serper.timeout_seconds", 20))
	require.NoError(t, store.Set("serper.rate_per_second", 2.5))
	require.NoError(t, store.Set("serper.max_retries", 2))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "abc", reloaded.GetString("serper.api_key"))
	assert.Equal(t, 20, reloaded.GetInt("serper.timeout_seconds"))
	rate, ok := reloaded.Get("serper.rate_per_second")
	require.True(t, ok)
	assert.InDelta(t, 2.5, rate, 0.0001)
	assert.Equal(t, 2, reloaded.GetInt("serper.max_retries"))
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	content := "[serper]\napi_key = \"from-file\"\nendpoint = \"https://proxy.test/search\"\n\n[search]\nconcurrency = 6\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, "from-file", store.GetString("serper.api_key"))
	assert.Equal(t, "https://proxy.test/search", store.GetString("serper.endpoint"))
	assert.Equal(t, 6, store.GetInt("search.concurrency"))
}

func TestConfigStore_TypeMismatchReturnsZero(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "text"))

	assert.Zero(t, store.GetInt("k"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("serper.api_key", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[[[broken"), 0o600))

	_, err := NewConfigStore(dir)

	assert.Error(t, err)
}

func TestConfigStore_Set_RollsBackOnWriteFailure(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	store.filePath = filepath.Join(dir, "missing-dir", "config.toml")

	err = store.Set("serper.api_key", "x")
	require.Error(t, err)
	_, ok := store.Get("serper.api_key")
	assert.False(t, ok)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 10 {
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
}

func TestNest(t *testing.T) {
	got := nest(map[string]any{
		"serper.api_key":  "k",
		"serper.endpoint": "e",
		"top":             1,
	})

	assert.Equal(t, map[string]any{
		"serper": map[string]any{"api_key": "k", "endpoint": "e"},
		"top":    1,
	}, got)
}

func TestFlatten(t *testing.T) {
	got := flatten(map[string]any{
		"serper": map[string]any{"api_key": "k", "retry": map[string]any{"max": int64(2)}},
	}, "")

	assert.Equal(t, map[string]any{
		"serper.api_key":   "k",
		"serper.retry.max": int64(2),
	}, got)
}
