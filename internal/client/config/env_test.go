package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Run("variables override", func(t *testing.T) {
		t.Setenv("QK_STORE_DRIVER", "postgres")
		t.Setenv("QK_AUTOSAVE_DELAY", "3s")
		t.Setenv("QK_SESSION_CACHE_SIZE", "2")

		var c Config
		c.LoadDefaults()
		require.NoError(t, parseEnv(&c, ""))

		assert.Equal(t, "postgres", c.StoreDriver)
		assert.Equal(t, 3*time.Second, c.AutosaveDelay)
		assert.Equal(t, 2, c.SessionCacheSize)
		assert.Equal(t, 50, c.ListLimit)
	})

	t.Run("dotenv file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("QK_ACCESS_TOKEN=from-file\nQK_LIST_LIMIT=5\n"), 0o600))
		t.Cleanup(func() {
			_ = os.Unsetenv("QK_ACCESS_TOKEN")
			_ = os.Unsetenv("QK_LIST_LIMIT")
		})

		var c Config
		c.LoadDefaults()
		require.NoError(t, parseEnv(&c, path))

		assert.Equal(t, "from-file", c.AccessToken)
		assert.Equal(t, 5, c.ListLimit)
	})

	t.Run("process env wins over dotenv", func(t *testing.T) {
		t.Setenv("QK_OWNER_ID", "process")
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("QK_OWNER_ID=file\n"), 0o600))

		var c Config
		require.NoError(t, parseEnv(&c, path))
		assert.Equal(t, "process", c.OwnerID)
	})

	t.Run("missing dotenv is fine", func(t *testing.T) {
		var c Config
		require.NoError(t, parseEnv(&c, filepath.Join(t.TempDir(), "nope.env")))
	})

	t.Run("bad values", func(t *testing.T) {
		t.Setenv("QK_LIST_LIMIT", "many")
		var c Config
		assert.ErrorContains(t, parseEnv(&c, ""), "QK_LIST_LIMIT")
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("QK_PROFILE_LIST_TTL", "forever")
		var c Config
		assert.ErrorContains(t, parseEnv(&c, ""), "QK_PROFILE_LIST_TTL")
	})
}
