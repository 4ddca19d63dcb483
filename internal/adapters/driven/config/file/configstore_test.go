package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".persona", "config.toml"), store.Path())
}

func TestNewConfigStore_NestedDirectoryPermissions(t *testing.T) {
	nestedPath := filepath.Join(t.TempDir(), "nested", "deep")

	_, err := NewConfigStore(nestedPath)
	require.NoError(t, err)

	info, err := os.Stat(nestedPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("ingest.max_files", 42))
	require.NoError(t, store.Set("ingest.max_file_size", int64(1<<20)))
	require.NoError(t, store.Set("ingest.extract_timeout", "750ms"))
	require.NoError(t, store.Set("drive.requests_per_second", 2.5))
	require.NoError(t, store.Set("ocr.enabled", true))
	require.NoError(t, store.Set("llm.model", "gpt-4o-mini"))

	assert.Equal(t, 42, store.GetInt("ingest.max_files"))
	assert.Equal(t, 1<<20, store.GetInt("ingest.max_file_size"))
	assert.Equal(t, 750*time.Millisecond, store.GetDuration("ingest.extract_timeout"))
	assert.InDelta(t, 2.5, store.GetFloat("drive.requests_per_second"), 0)
	assert.InDelta(t, 42.0, store.GetFloat("ingest.max_files"), 0)
	assert.True(t, store.GetBool("ocr.enabled"))
	assert.Equal(t, "gpt-4o-mini", store.GetString("llm.model"))
}

func TestConfigStore_WrongTypesReturnZero(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("a", "not a number"))
	require.NoError(t, store.Set("b", 42))

	assert.Equal(t, 0, store.GetInt("a"))
	assert.InDelta(t, 0.0, store.GetFloat("a"), 0)
	assert.False(t, store.GetBool("a"))
	assert.Equal(t, time.Duration(0), store.GetDuration("a"))
	assert.Equal(t, "", store.GetString("b"))

	val, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_GetDuration_Seconds(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("t1", int64(7)))
	require.NoError(t, store.Set("t2", "9"))

	assert.Equal(t, 7*time.Second, store.GetDuration("t1"))
	assert.Equal(t, 9*time.Second, store.GetDuration("t2"))
}

func TestConfigStore_PersistsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("ingest.max_text_length", 1200))
	require.NoError(t, store.Set("ingest.extract_timeout", "5s"))
	require.NoError(t, store.Set("llm.provider", "ollama"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[ingest]")
	assert.Contains(t, string(raw), "[llm]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 1200, reloaded.GetInt("ingest.max_text_length"))
	assert.Equal(t, 5*time.Second, reloaded.GetDuration("ingest.extract_timeout"))
	assert.Equal(t, "ollama", reloaded.GetString("llm.provider"))
}

func TestConfigStore_ReadsHandWrittenTOML(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[ingest]
max_depth = 4
extract_timeout = "2s"

[export]
spreadsheet = "none"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 4, store.GetInt("ingest.max_depth"))
	assert.Equal(t, 2*time.Second, store.GetDuration("ingest.extract_timeout"))
	assert.Equal(t, "none", store.GetString("export.spreadsheet"))
}

func TestConfigStore_EnvOverrides(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("ingest.max_files", 10))
	require.NoError(t, store.Set("ocr.enabled", true))

	t.Setenv("PERSONA_INGEST_MAX_FILES", "25")
	t.Setenv("PERSONA_OCR_ENABLED", "false")
	t.Setenv("PERSONA_INGEST_EXTRACT_TIMEOUT", "3s")
	t.Setenv("PERSONA_DRIVE_REQUESTS_PER_SECOND", "1.5")

	assert.Equal(t, 25, store.GetInt("ingest.max_files"))
	assert.False(t, store.GetBool("ocr.enabled"))
	assert.Equal(t, 3*time.Second, store.GetDuration("ingest.extract_timeout"))
	assert.InDelta(t, 1.5, store.GetFloat("drive.requests_per_second"), 0)

	// Overrides are not persisted.
	require.NoError(t, store.Save())
	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "25")
}

func TestConfigStore_GoogleEnvAliases(t *testing.T) {
	store := newStore(t)

	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/keys/sa.json")
	t.Setenv("GOOGLE_ACCESS_TOKEN", "ya29.x")
	assert.Equal(t, "/keys/sa.json", store.GetString("drive.credentials_file"))
	assert.Equal(t, "ya29.x", store.GetString("drive.access_token"))

	t.Setenv("PERSONA_DRIVE_CREDENTIALS_FILE", "/keys/other.json")
	assert.Equal(t, "/keys/other.json", store.GetString("drive.credentials_file"))
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "PERSONA_INGEST_MAX_TEXT_LENGTH", EnvKey("ingest.max_text_length"))
	assert.Equal(t, "PERSONA_LLM_API_KEY", EnvKey("llm.api_key"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("k", "v"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("test", "value"))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("another", "value"))
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store := newStore(t)
	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("# Just a comment\n\n"), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("any_key")
	assert.False(t, ok)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newStore(t)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("ingest.max_files", i)
		}()
		go func() {
			defer wg.Done()
			_ = store.GetInt("ingest.max_files")
		}()
	}
	wg.Wait()

	_, ok := store.Get("ingest.max_files")
	assert.True(t, ok)
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"ingest.max_files": 5,
		"ingest.max_depth": 3,
		"top":              "x",
	})

	ingest, ok := nested["ingest"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 5, ingest["max_files"])
	assert.Equal(t, 3, ingest["max_depth"])
	assert.Equal(t, "x", nested["top"])

	assert.Equal(t, map[string]any{"ingest.max_files": 5, "ingest.max_depth": 3, "top": "x"}, flattenMap(nested, ""))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "explicit.env")
	require.NoError(t, os.WriteFile(explicit, []byte("PERSONA_TEST_DOTENV_A=explicit\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PERSONA_TEST_DOTENV_A=config\nPERSONA_TEST_DOTENV_B=config\n"), 0600))

	t.Setenv("PERSONA_TEST_DOTENV_A", "")
	t.Setenv("PERSONA_TEST_DOTENV_B", "")
	require.NoError(t, os.Unsetenv("PERSONA_TEST_DOTENV_A"))
	require.NoError(t, os.Unsetenv("PERSONA_TEST_DOTENV_B"))

	require.NoError(t, LoadDotEnv(dir, explicit, filepath.Join(dir, "missing.env")))

	assert.Equal(t, "explicit", os.Getenv("PERSONA_TEST_DOTENV_A"))
	assert.Equal(t, "config", os.Getenv("PERSONA_TEST_DOTENV_B"))
}
