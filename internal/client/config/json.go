package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fraudsentry/internal/client/views"
	"github.com/dmitrijs2005/fraudsentry/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the corresponding Config field unchanged.
type JsonConfig struct {
	APIBaseURL   string `json:"api_base_url"`
	DatabasePath string `json:"database_path"`
	ConfirmMode  string `json:"confirm_mode"`
	LogLevel     string `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config, if any. It panics
// when the file cannot be read or parsed.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.ConfirmMode != "" {
		cfg.ConfirmMode = views.ConfirmMode(jc.ConfirmMode)
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
