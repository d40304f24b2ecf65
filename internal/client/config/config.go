package config

import (
	"time"

	"github.com/dmitrijs2005/quotekeeper/internal/blobref"
	"github.com/dmitrijs2005/quotekeeper/internal/client/models"
)

// Config holds runtime settings for the QuoteKeeper CLI.
type Config struct {
	StoreDriver      string
	DatabaseDSN      string
	BlobEndpoint     string
	BlobKeyMarker    string
	AccessToken      string
	OwnerID          string
	QuoteListTTL     time.Duration
	TemplateListTTL  time.Duration
	ProfileListTTL   time.Duration
	ListLimit        int
	AutosaveDelay    time.Duration
	SessionCacheSize int
}

// LoadDefaults populates c with defaults suitable for local use.
func (c *Config) LoadDefaults() {
	c.StoreDriver = "sqlite"
	c.DatabaseDSN = ""
	c.BlobEndpoint = "http://127.0.0.1:8080"
	c.BlobKeyMarker = blobref.DefaultMarker
	c.QuoteListTTL = 30 * time.Second
	c.TemplateListTTL = time.Minute
	c.ProfileListTTL = 5 * time.Minute
	c.ListLimit = 50
	c.AutosaveDelay = 2 * time.Second
	c.SessionCacheSize = 8
}

// TTLs returns the per-kind list cache TTLs.
func (c *Config) TTLs() map[models.Kind]time.Duration {
	return map[models.Kind]time.Duration{
		models.KindQuote:    c.QuoteListTTL,
		models.KindTemplate: c.TemplateListTTL,
		models.KindProfile:  c.ProfileListTTL,
	}
}

// LoadConfig builds a Config from defaults, the environment, an optional JSON
// file and flags found in args (os.Args[1:]). Later sources win.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
