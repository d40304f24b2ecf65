// Package blobstore removes generated documents from object storage.
// Drivers: s3 (aws-sdk-go-v2), minio (minio-go) and memory.
package blobstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/quotekeeper/internal/server/config"
)

// Store deletes objects by key. Deleting a missing key is not an error.
type Store interface {
	Delete(ctx context.Context, key string) error
}

// New builds the Store selected by cfg.BlobDriver.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.BlobDriver {
	case config.DriverS3:
		return NewS3(ctx, S3Config{
			Endpoint:  cfg.S3BaseEndpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3RootUser,
			SecretKey: cfg.S3RootPassword,
			Bucket:    cfg.S3Bucket,
		})
	case config.DriverMinio:
		return NewMinio(S3Config{
			Endpoint:  cfg.S3BaseEndpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3RootUser,
			SecretKey: cfg.S3RootPassword,
			Bucket:    cfg.S3Bucket,
		})
	case config.DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.BlobDriver)
	}
}

// S3Config is shared by the S3-compatible drivers. Endpoint is a full URL
// such as "http://127.0.0.1:9000/"; empty means AWS.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}
