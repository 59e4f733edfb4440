package config

import (
	"flag"

	"github.com/dmitrijs2005/fraudsentry/internal/client/views"
	"github.com/dmitrijs2005/fraudsentry/internal/flagx"
)

// parseFlags overlays cfg with the flags it knows about. Other flags in args
// are ignored, see flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the remote API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database")
	mode := fs.String("m", string(cfg.ConfirmMode), "transaction confirmation mode (optimistic|blocking)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ConfirmMode = views.ConfirmMode(*mode)
}
