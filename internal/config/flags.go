package config

import (
	"flag"
	"os"

	"github.com/bookdesk/bookdesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string    data directory for database and document library
//	-cw float    desk canvas width
//	-ch float    desk canvas height
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-cw", "-ch"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory for app-private state")
	fs.Float64Var(&cfg.CanvasWidth, "cw", cfg.CanvasWidth, "desk canvas width")
	fs.Float64Var(&cfg.CanvasHeight, "ch", cfg.CanvasHeight, "desk canvas height")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
