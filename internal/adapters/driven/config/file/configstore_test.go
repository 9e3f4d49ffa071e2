package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(home, ".docingest", "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("ocr.provider", "googlevision")
	require.NoError(t, err)

	val, ok := store.Get("ocr.provider")
	assert.True(t, ok)
	assert.Equal(t, "googlevision", val)
}

func TestConfigStore_GetString(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("store.backend", "sqlite")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", store.GetString("store.backend"))

	// Non-existent key
	assert.Equal(t, "", store.GetString("nonexistent"))

	// Wrong type
	err = store.Set("ingest.max_parallel_files", 4)
	require.NoError(t, err)
	assert.Equal(t, "", store.GetString("ingest.max_parallel_files"))
}

func TestConfigStore_GetInt(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("ingest.max_parallel_files", 8)
	require.NoError(t, err)

	assert.Equal(t, 8, store.GetInt("ingest.max_parallel_files"))

	// Non-existent key
	assert.Equal(t, 0, store.GetInt("nonexistent"))

	// Wrong type
	err = store.Set("ocr.provider", "tesseract")
	require.NoError(t, err)
	assert.Equal(t, 0, store.GetInt("ocr.provider"))
}

func TestConfigStore_GetInt_Int64Type(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	// TOML unmarshal produces int64
	store.mu.Lock()
	store.data["int64_key"] = int64(9999)
	store.mu.Unlock()

	assert.Equal(t, 9999, store.GetInt("int64_key"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("ingest.coverage_threshold", 0.30)
	require.NoError(t, err)

	assert.InDelta(t, 0.30, store.GetFloat("ingest.coverage_threshold"), 0.0001)

	// Non-existent key
	assert.Zero(t, store.GetFloat("nonexistent"))

	// Wrong type
	err = store.Set("ocr.provider", "vertex")
	require.NoError(t, err)
	assert.Zero(t, store.GetFloat("ocr.provider"))
}

func TestConfigStore_GetFloat_IntegerValue(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	// A threshold written as a whole number reads as a float
	store.mu.Lock()
	store.data["whole"] = int64(1)
	store.mu.Unlock()

	assert.Equal(t, 1.0, store.GetFloat("whole"))
}

func TestConfigStore_GetBool(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("verbose", true)
	require.NoError(t, err)
	assert.True(t, store.GetBool("verbose"))

	err = store.Set("quiet", false)
	require.NoError(t, err)
	assert.False(t, store.GetBool("quiet"))

	// Non-existent key
	assert.False(t, store.GetBool("nonexistent"))

	// Wrong type
	err = store.Set("name", "true")
	require.NoError(t, err)
	assert.False(t, store.GetBool("name"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("ocr.languages", []string{"eng", "deu"})
	require.NoError(t, err)

	assert.Equal(t, []string{"eng", "deu"}, store.GetStringSlice("ocr.languages"))

	// TOML arrays round-trip as []any
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"eng", "deu"}, store2.GetStringSlice("ocr.languages"))

	// Non-existent key
	assert.Nil(t, store.GetStringSlice("nonexistent"))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store1.Set("ocr.provider", "googlevision"))
	require.NoError(t, store1.Set("ingest.max_parallel_files", 4))
	require.NoError(t, store1.Set("ingest.coverage_threshold", 0.30))
	require.NoError(t, store1.Set("verbose", true))

	// A fresh instance loads from the file
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "googlevision", store2.GetString("ocr.provider"))
	assert.Equal(t, 4, store2.GetInt("ingest.max_parallel_files"))
	assert.InDelta(t, 0.30, store2.GetFloat("ingest.coverage_threshold"), 0.0001)
	assert.True(t, store2.GetBool("verbose"))
}

func TestConfigStore_DotNotationRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	// Dotted keys marshal as nested TOML tables; loading flattens them back
	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("ocr.vertex.project", "my-project"))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "my-project", store2.GetString("ocr.vertex.project"))
}

func TestConfigStore_Load_NonExistent(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	val, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("test", "value")
	require.NoError(t, err)

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()

	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	val, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_OverwriteValue(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("ocr.provider", "googlevision"))
	assert.Equal(t, "googlevision", store.GetString("ocr.provider"))

	require.NoError(t, store.Set("ocr.provider", "vertex"))
	assert.Equal(t, "vertex", store.GetString("ocr.provider"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
			_ = store.GetFloat(key)
			_, _ = store.Get(key)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	// A path under /dev/null cannot be created
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()

	corrupted := []byte("this is not valid TOML {{{[[")
	err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), corrupted, 0600)
	require.NoError(t, err)

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("test", "value")
	require.NoError(t, err)

	// Replace the file with a directory to force a write error
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	err = store.Set("another", "value")
	assert.Error(t, err)
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	// Channels cannot be marshalled to TOML
	err = store.Set("channel", make(chan int))

	assert.Error(t, err)
}

func TestFlattenMap(t *testing.T) {
	nested := map[string]any{
		"ocr": map[string]any{
			"provider": "vertex",
			"vertex": map[string]any{
				"project": "p-1",
			},
		},
		"verbose": true,
	}

	flat := flattenMap(nested, "")

	assert.Equal(t, "vertex", flat["ocr.provider"])
	assert.Equal(t, "p-1", flat["ocr.vertex.project"])
	assert.Equal(t, true, flat["verbose"])
	_, hasNested := flat["ocr"]
	assert.False(t, hasNested)
}
