package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    *Config
		wantErr bool
	}{
		{
			name: "all flags",
			args: []string{"-s", "postgres", "-d", "dsn", "-b", "http://blob", "-m", "/pdfs/", "-t", "tok",
				"-u", "u1", "-l", "25", "-quote-ttl", "5s", "-template-ttl=6s", "-profile-ttl", "7s", "-autosave", "1s"},
			want: &Config{
				StoreDriver: "postgres", DatabaseDSN: "dsn", BlobEndpoint: "http://blob", BlobKeyMarker: "/pdfs/",
				AccessToken: "tok", OwnerID: "u1", ListLimit: 25,
				QuoteListTTL: 5 * time.Second, TemplateListTTL: 6 * time.Second, ProfileListTTL: 7 * time.Second,
				AutosaveDelay: time.Second,
			},
		},
		{
			name: "commands and unknown flags are ignored",
			args: []string{"delete", "-x", "1", "quote", "q1", "-u", "u2"},
			want: &Config{OwnerID: "u2"},
		},
		{
			name:    "bad int",
			args:    []string{"-l", "abc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.want, cfg))
		})
	}
}
