package config

import "path/filepath"

// Config holds runtime settings for the BookDesk CLI.
//
// Fields:
//   - DataDir: root directory for all app-private state (database + library).
//   - CanvasWidth/CanvasHeight: desk canvas size used to derive card sizes
//     and import positions.
type Config struct {
	DataDir      string
	CanvasWidth  float64
	CanvasHeight float64
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = ".bookdesk"
	c.CanvasWidth = 1024
	c.CanvasHeight = 768
}

// DatabasePath is the location of the SQLite database file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "bookdesk.db")
}

// LibraryDir is the app-private folder imported documents are copied into.
func (c *Config) LibraryDir() string {
	return filepath.Join(c.DataDir, "library")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
