package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/quotekeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "sqlite", c.StoreDriver)
	assert.Equal(t, "http://127.0.0.1:8080", c.BlobEndpoint)
	assert.Equal(t, "/quote-pdfs/", c.BlobKeyMarker)
	assert.Equal(t, 30*time.Second, c.QuoteListTTL)
	assert.Equal(t, 50, c.ListLimit)
	assert.Equal(t, 2*time.Second, c.AutosaveDelay)
	assert.Equal(t, 8, c.SessionCacheSize)
}

func TestConfig_TTLs(t *testing.T) {
	var c Config
	c.LoadDefaults()
	c.QuoteListTTL = time.Second

	ttls := c.TTLs()
	assert.Equal(t, time.Second, ttls[models.KindQuote])
	assert.Equal(t, time.Minute, ttls[models.KindTemplate])
	assert.Equal(t, 5*time.Minute, ttls[models.KindProfile])
}

func TestLoadConfig_Precedence(t *testing.T) {
	t.Setenv("QK_BLOB_ENDPOINT", "http://env:8080")
	t.Setenv("QK_OWNER_ID", "env-owner")
	t.Setenv("QK_QUOTE_LIST_TTL", "45s")

	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"owner_id":"json-owner","list_limit":20}`), 0o600))

	cfg, err := LoadConfig([]string{"list", "-c", path, "-l", "10", "quote"})
	require.NoError(t, err)

	assert.Equal(t, "http://env:8080", cfg.BlobEndpoint, "env over defaults")
	assert.Equal(t, 45*time.Second, cfg.QuoteListTTL)
	assert.Equal(t, "json-owner", cfg.OwnerID, "json over env")
	assert.Equal(t, 10, cfg.ListLimit, "flags over json")
	assert.Equal(t, "sqlite", cfg.StoreDriver)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)

	_, err = LoadConfig([]string{"-autosave", "soon"})
	assert.Error(t, err)
}

func TestValueFlags(t *testing.T) {
	vf := ValueFlags()
	assert.Contains(t, vf, "-c")
	assert.Contains(t, vf, "-quote-ttl")
	assert.NotContains(t, configFlags, "-c", "ValueFlags must not alias configFlags")
}
