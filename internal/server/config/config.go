// Package config handles configuration for the blob deletion service,
// including defaults, environment, JSON overlay and command-line flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/quotekeeper/internal/blobref"
)

// Blob drivers.
const (
	DriverS3     = "s3"
	DriverMinio  = "minio"
	DriverMemory = "memory"
)

// Config holds runtime settings for blobd.
//
// Fields:
//   - ListenAddr: bind address of the HTTP endpoint.
//   - SecretKey: HMAC secret for verifying HS256 access tokens.
//   - TokenValidity: lifetime of tokens minted by "blobd token".
//   - BlobDriver: s3, minio or memory.
//   - BlobKeyMarker: path segment that precedes object keys in document URLs.
//   - S3*: object storage settings shared by the s3 and minio drivers.
type Config struct {
	ListenAddr      string
	SecretKey       string
	TokenValidity   time.Duration
	ShutdownTimeout time.Duration
	BlobDriver      string
	BlobKeyMarker   string
	S3RootUser      string
	S3RootPassword  string
	S3Bucket        string
	S3Region        string
	S3BaseEndpoint  string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret and S3 credentials are insecure and must be overridden.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.SecretKey = "secretKey"
	c.TokenValidity = 24 * time.Hour
	c.ShutdownTimeout = 10 * time.Second
	c.BlobDriver = DriverS3
	c.BlobKeyMarker = blobref.DefaultMarker
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "quote-pdfs"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then the environment,
// an optional JSON file and finally flags found in args.
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
