package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/quotekeeper/internal/flagx"
)

var configFlags = []string{
	"-s", "-d", "-b", "-m", "-t", "-u", "-l",
	"-quote-ttl", "-template-ttl", "-profile-ttl", "-autosave",
}

// ValueFlags lists the config flags that consume the next argument, for
// callers that need to find positional arguments.
func ValueFlags() []string {
	out := append([]string{"-c", "-config"}, configFlags...)
	return out
}

// parseFlags overlays cfg with the config flags present in args. Other
// arguments are ignored.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StoreDriver, "s", cfg.StoreDriver, "store driver (postgres or sqlite)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.BlobEndpoint, "b", cfg.BlobEndpoint, "blob service base URL")
	fs.StringVar(&cfg.BlobKeyMarker, "m", cfg.BlobKeyMarker, "blob key marker")
	fs.StringVar(&cfg.AccessToken, "t", cfg.AccessToken, "access token")
	fs.StringVar(&cfg.OwnerID, "u", cfg.OwnerID, "owner id")
	fs.IntVar(&cfg.ListLimit, "l", cfg.ListLimit, "quote list limit")
	fs.DurationVar(&cfg.QuoteListTTL, "quote-ttl", cfg.QuoteListTTL, "quote list cache TTL")
	fs.DurationVar(&cfg.TemplateListTTL, "template-ttl", cfg.TemplateListTTL, "template list cache TTL")
	fs.DurationVar(&cfg.ProfileListTTL, "profile-ttl", cfg.ProfileListTTL, "profile list cache TTL")
	fs.DurationVar(&cfg.AutosaveDelay, "autosave", cfg.AutosaveDelay, "auto-save quiet period")

	return fs.Parse(flagx.FilterArgs(args, configFlags))
}
