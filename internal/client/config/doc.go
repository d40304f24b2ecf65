// Package config loads runtime configuration for the QuoteKeeper client.
//
// # Sources and precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed with QK_, optionally read from a .env
//     file in the working directory.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything else.
//
// # Supported flags
//
//	-s string          store driver: postgres or sqlite
//	-d string          database DSN
//	-b string          blob service base URL
//	-m string          path segment that precedes blob keys in document URLs
//	-t string          access token
//	-u string          owner id (defaults to the token subject)
//	-l int             quote list limit
//	-quote-ttl dur     quote list cache TTL
//	-template-ttl dur  template list cache TTL
//	-profile-ttl dur   profile list cache TTL
//	-autosave dur      auto-save quiet period
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "30s" or integer
// nanoseconds:
//
//	{
//	  "store_driver": "postgres",
//	  "database_dsn": "postgres://localhost:5432/quotes",
//	  "blob_endpoint": "http://127.0.0.1:8080",
//	  "quote_list_ttl": "30s",
//	  "autosave_delay": "2s"
//	}
package config
