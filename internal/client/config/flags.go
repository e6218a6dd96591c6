package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/bothoster/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   registry API base URL
//	-e string   identity endpoint
//	-k string   identity API key
//	-t          verify bot tokens with Telegram before creating
//	-d string   local database path
//	-i int      online check interval in seconds
//	-l string   log level
//
// args is filtered with flagx.FilterArgs so flags owned by other stages
// (such as -c) do not interfere.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-e", "-k", "-t", "-d", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "registry API base URL")
	fs.StringVar(&cfg.IdentityEndpoint, "e", cfg.IdentityEndpoint, "identity endpoint")
	fs.StringVar(&cfg.IdentityAPIKey, "k", cfg.IdentityAPIKey, "identity API key")
	fs.BoolVar(&cfg.VerifyTokens, "t", cfg.VerifyTokens, "verify bot tokens with Telegram")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// Only an explicit -i overrides; the seconds default would truncate
	// sub-second intervals coming from earlier stages.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
		}
	})
	return nil
}
