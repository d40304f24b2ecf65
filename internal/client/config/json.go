package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/quotekeeper/internal/flagx"
	"github.com/dmitrijs2005/quotekeeper/internal/timex"
)

// JSONConfig is the on-disk shape of the config file. Pointer fields tell
// "absent" from "zero" so a partial file only overrides what it names.
type JSONConfig struct {
	StoreDriver      *string         `json:"store_driver"`
	DatabaseDSN      *string         `json:"database_dsn"`
	BlobEndpoint     *string         `json:"blob_endpoint"`
	BlobKeyMarker    *string         `json:"blob_key_marker"`
	AccessToken      *string         `json:"access_token"`
	OwnerID          *string         `json:"owner_id"`
	QuoteListTTL     *timex.Duration `json:"quote_list_ttl"`
	TemplateListTTL  *timex.Duration `json:"template_list_ttl"`
	ProfileListTTL   *timex.Duration `json:"profile_list_ttl"`
	ListLimit        *int            `json:"list_limit"`
	AutosaveDelay    *timex.Duration `json:"autosave_delay"`
	SessionCacheSize *int            `json:"session_cache_size"`
}

// parseJSON overlays cfg with the file named by -c/-config in args, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.StoreDriver, jc.StoreDriver)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.BlobEndpoint, jc.BlobEndpoint)
	setString(&cfg.BlobKeyMarker, jc.BlobKeyMarker)
	setString(&cfg.AccessToken, jc.AccessToken)
	setString(&cfg.OwnerID, jc.OwnerID)
	if jc.QuoteListTTL != nil {
		cfg.QuoteListTTL = jc.QuoteListTTL.Duration
	}
	if jc.TemplateListTTL != nil {
		cfg.TemplateListTTL = jc.TemplateListTTL.Duration
	}
	if jc.ProfileListTTL != nil {
		cfg.ProfileListTTL = jc.ProfileListTTL.Duration
	}
	if jc.AutosaveDelay != nil {
		cfg.AutosaveDelay = jc.AutosaveDelay.Duration
	}
	if jc.ListLimit != nil {
		cfg.ListLimit = *jc.ListLimit
	}
	if jc.SessionCacheSize != nil {
		cfg.SessionCacheSize = *jc.SessionCacheSize
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
