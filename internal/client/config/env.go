package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "QK_"

// parseEnv loads dotenvPath into the process environment (existing variables
// win) and overlays every QK_* variable that is set.
func parseEnv(cfg *Config, dotenvPath string) error {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}

	strs := map[string]*string{
		"STORE_DRIVER":    &cfg.StoreDriver,
		"DATABASE_DSN":    &cfg.DatabaseDSN,
		"BLOB_ENDPOINT":   &cfg.BlobEndpoint,
		"BLOB_KEY_MARKER": &cfg.BlobKeyMarker,
		"ACCESS_TOKEN":    &cfg.AccessToken,
		"OWNER_ID":        &cfg.OwnerID,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"QUOTE_LIST_TTL":    &cfg.QuoteListTTL,
		"TEMPLATE_LIST_TTL": &cfg.TemplateListTTL,
		"PROFILE_LIST_TTL":  &cfg.ProfileListTTL,
		"AUTOSAVE_DELAY":    &cfg.AutosaveDelay,
	}
	for name, dst := range durations {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*dst = d
		}
	}

	ints := map[string]*int{
		"LIST_LIMIT":         &cfg.ListLimit,
		"SESSION_CACHE_SIZE": &cfg.SessionCacheSize,
	}
	for name, dst := range ints {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*dst = n
		}
	}
	return nil
}
