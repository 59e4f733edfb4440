package config

import (
	"os"

	"github.com/dmitrijs2005/fraudsentry/internal/client/views"
	"github.com/dmitrijs2005/fraudsentry/internal/logging"
)

// EnvAPIBaseURL names the environment variable that sets the API base URL.
const EnvAPIBaseURL = "FRAUDSENTRY_API_URL"

// Config holds runtime settings for the fraudsentry CLI.
type Config struct {
	APIBaseURL   string
	DatabasePath string
	ConfirmMode  views.ConfirmMode
	LogLevel     string
}

// LoadDefaults populates c with the defaults used for local development.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3001/api"
	c.DatabasePath = "fraudsentry.db"
	c.ConfirmMode = views.ConfirmOptimistic
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and os.Args, in that order of increasing precedence.
func LoadConfig() *Config {
	return load(os.Args[1:], os.Getenv)
}

func load(args []string, getenv func(string) string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg, getenv)
	parseFlags(cfg, args)
	cfg.mustValidate()
	return cfg
}

func parseEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
}

func (c *Config) mustValidate() {
	mode, err := views.ParseConfirmMode(string(c.ConfirmMode))
	if err != nil {
		panic(err)
	}
	c.ConfirmMode = mode

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		panic(err)
	}
}
