// Package config loads runtime configuration for the BookDesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string    data directory for database and document library
//	-cw float    desk canvas width
//	-ch float    desk canvas height
//
// # JSON schema
//
//	{
//	  "data_dir": "/home/user/.bookdesk",
//	  "canvas_width": 1024,
//	  "canvas_height": 768
//	}
//
// Primary API
//
//   - type Config                     — data directory and canvas dimensions
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
