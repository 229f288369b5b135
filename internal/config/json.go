package config

import (
	"encoding/json"
	"os"

	"github.com/bookdesk/bookdesk/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Zero values
// mean "not set" and leave the corresponding Config field untouched.
type JsonConfig struct {
	DataDir      string  `json:"data_dir"`
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flags via flagx.JsonConfigFlags;
// when neither is given, no JSON is loaded. Read or unmarshal errors panic
// (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.CanvasWidth > 0 {
		cfg.CanvasWidth = jc.CanvasWidth
	}
	if jc.CanvasHeight > 0 {
		cfg.CanvasHeight = jc.CanvasHeight
	}
}
