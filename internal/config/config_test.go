package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ".bookdesk", c.DataDir)
	assert.Equal(t, float64(1024), c.CanvasWidth)
	assert.Equal(t, float64(768), c.CanvasHeight)
}

func TestDerivedPaths(t *testing.T) {
	c := Config{DataDir: "/data/bookdesk"}

	assert.Equal(t, filepath.Join("/data/bookdesk", "bookdesk.db"), c.DatabasePath())
	assert.Equal(t, filepath.Join("/data/bookdesk", "library"), c.LibraryDir())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, ".bookdesk", cfg.DataDir)
	assert.Equal(t, float64(1024), cfg.CanvasWidth)
	assert.Equal(t, float64(768), cfg.CanvasHeight)
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"data_dir":      "/srv/bookdesk",
		"canvas_width":  800,
		"canvas_height": 600,
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "/srv/bookdesk", cfg.DataDir)
		assert.Equal(t, float64(800), cfg.CanvasWidth)
		assert.Equal(t, float64(600), cfg.CanvasHeight)
	})

	t.Run("no config flag leaves values untouched", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{DataDir: "kept", CanvasWidth: 1, CanvasHeight: 2}
		parseJson(cfg)

		assert.Equal(t, "kept", cfg.DataDir)
		assert.Equal(t, float64(1), cfg.CanvasWidth)
		assert.Equal(t, float64(2), cfg.CanvasHeight)
	})

	t.Run("partial json only overrides given fields", func(t *testing.T) {
		partial := writeTempJSON(t, map[string]any{"data_dir": "/only/dir"})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "/only/dir", cfg.DataDir)
		assert.Equal(t, float64(1024), cfg.CanvasWidth)
	})
}

func Test_parseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("overrides from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-d", "/flag/dir", "-cw", "640", "-ch", "480"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, "/flag/dir", cfg.DataDir)
		assert.Equal(t, float64(640), cfg.CanvasWidth)
		assert.Equal(t, float64(480), cfg.CanvasHeight)
	})

	t.Run("no flags keeps defaults", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFlags(cfg)

		assert.Equal(t, ".bookdesk", cfg.DataDir)
	})
}
