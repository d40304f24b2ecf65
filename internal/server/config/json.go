package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/quotekeeper/internal/flagx"
	"github.com/dmitrijs2005/quotekeeper/internal/timex"
)

// JsonConfig is the DTO read from the config file. Durations use
// timex.Duration, so "10s" and integer nanoseconds both work. Empty fields
// leave the current value alone.
type JsonConfig struct {
	ListenAddr      string         `json:"listen_addr"`
	SecretKey       string         `json:"secret_key"`
	TokenValidity   timex.Duration `json:"token_validity"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
	BlobDriver      string         `json:"blob_driver"`
	BlobKeyMarker   string         `json:"blob_key_marker"`
	S3RootUser      string         `json:"s3_root_user"`
	S3RootPassword  string         `json:"s3_root_password"`
	S3Bucket        string         `json:"s3_bucket"`
	S3Region        string         `json:"s3_region"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	for dst, v := range map[*string]string{
		&cfg.ListenAddr:     jc.ListenAddr,
		&cfg.SecretKey:      jc.SecretKey,
		&cfg.BlobDriver:     jc.BlobDriver,
		&cfg.BlobKeyMarker:  jc.BlobKeyMarker,
		&cfg.S3RootUser:     jc.S3RootUser,
		&cfg.S3RootPassword: jc.S3RootPassword,
		&cfg.S3Bucket:       jc.S3Bucket,
		&cfg.S3Region:       jc.S3Region,
		&cfg.S3BaseEndpoint: jc.S3BaseEndpoint,
	} {
		if v != "" {
			*dst = v
		}
	}
	if jc.TokenValidity.Duration != 0 {
		cfg.TokenValidity = jc.TokenValidity.Duration
	}
	if jc.ShutdownTimeout.Duration != 0 {
		cfg.ShutdownTimeout = jc.ShutdownTimeout.Duration
	}
	return nil
}
