package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/quotekeeper/internal/flagx"
)

var configFlags = []string{"-a", "-s", "-t", "-x", "-m", "-u", "-p", "-b", "-g", "-e"}

// ValueFlags lists the flags that consume the next argument.
func ValueFlags() []string {
	return append([]string{"-c", "-config"}, configFlags...)
}

// parseFlags overlays cfg with the flags it knows in args.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":8080")
//	-s string   JWT HMAC secret key
//	-t dur      validity of minted tokens
//	-x string   blob driver: s3, minio or memory
//	-m string   blob key marker
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g. "http://127.0.0.1:9000/")
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, configFlags)

	fs := flag.NewFlagSet("blobd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "address and port to run server")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	fs.DurationVar(&cfg.TokenValidity, "t", cfg.TokenValidity, "validity of minted tokens")
	fs.StringVar(&cfg.BlobDriver, "x", cfg.BlobDriver, "blob driver")
	fs.StringVar(&cfg.BlobKeyMarker, "m", cfg.BlobKeyMarker, "blob key marker")
	fs.StringVar(&cfg.S3RootUser, "u", cfg.S3RootUser, "S3 root user")
	fs.StringVar(&cfg.S3RootPassword, "p", cfg.S3RootPassword, "S3 root password")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "e", cfg.S3BaseEndpoint, "S3 base endpoint")

	return fs.Parse(args)
}
