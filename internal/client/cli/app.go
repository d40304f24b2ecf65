package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/quotekeeper/internal/auth"
	"github.com/dmitrijs2005/quotekeeper/internal/client/autosave"
	"github.com/dmitrijs2005/quotekeeper/internal/client/blob"
	"github.com/dmitrijs2005/quotekeeper/internal/client/cache"
	"github.com/dmitrijs2005/quotekeeper/internal/client/config"
	"github.com/dmitrijs2005/quotekeeper/internal/client/models"
	"github.com/dmitrijs2005/quotekeeper/internal/client/records"
	"github.com/dmitrijs2005/quotekeeper/internal/client/store"
	"github.com/dmitrijs2005/quotekeeper/internal/dbx"
	"github.com/dmitrijs2005/quotekeeper/internal/filex"
	"github.com/dmitrijs2005/quotekeeper/internal/logging"
)

// App holds the signed-in session and the profile currently being edited.
type App struct {
	config   *config.Config
	logger   logging.Logger
	service  *records.Service
	registry *cache.Registry
	db       *sql.DB
	out      io.Writer

	mu        sync.Mutex
	profileID string
	profile   *autosave.Engine[models.Configuration]
}

// NewApp opens the local store, migrates it and signs in the owner named by
// the configuration (or by the access token's subject).
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	dsn := c.DatabaseDSN
	if dsn == "" && dbx.Dialect(c.StoreDriver) == dbx.SQLite {
		var err error
		dsn, err = filex.SQLiteDSN("data", "quotekeeper.db")
		if err != nil {
			return nil, err
		}
	}

	st, db, err := store.Open(ctx, c.StoreDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}
	st.SetListLimit(models.KindQuote, c.ListLimit)

	identity, err := identityFromConfig(c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	registry, err := cache.NewRegistry(c.SessionCacheSize, cache.Options{TTL: c.TTLs(), Logger: logger})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	session, err := registry.Session(identity)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var blobs blob.Remover
	if c.BlobEndpoint != "" {
		blobs = blob.NewClient(c.BlobEndpoint, nil)
	}

	svc := records.NewService(st, blobs, session,
		records.WithLogger(logger),
		records.WithKeyMarker(c.BlobKeyMarker),
	)

	app := newApp(c, svc, logger, os.Stdout)
	app.registry = registry
	app.db = db
	return app, nil
}

func newApp(c *config.Config, svc *records.Service, logger logging.Logger, out io.Writer) *App {
	return &App{config: c, service: svc, logger: logger, out: out}
}

// identityFromConfig prefers an explicit owner id and otherwise reads the
// subject of the access token.
func identityFromConfig(c *config.Config) (models.Identity, error) {
	id := models.Identity{OwnerID: c.OwnerID, AccessToken: c.AccessToken}
	if id.OwnerID == "" && id.AccessToken != "" {
		owner, err := auth.UnverifiedOwnerID(id.AccessToken)
		if err != nil {
			return id, fmt.Errorf("access token: %w", err)
		}
		id.OwnerID = owner
	}
	return id, nil
}

// Close cancels a pending auto-save, then releases the session caches and
// the database.
func (a *App) Close() error {
	a.mu.Lock()
	if a.profile != nil {
		a.profile.Close()
		a.profile = nil
	}
	a.mu.Unlock()

	if a.registry != nil {
		a.registry.Close()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Status is shown in the interactive prompt.
func (a *App) Status() string {
	s := a.service.Session().Identity().OwnerID
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.profile != nil {
		st := a.profile.Status()
		s = fmt.Sprintf("%s profile:%s", s, st.State)
		if st.HasUnsavedChanges {
			s += "*"
		}
		if st.Degraded {
			s += " (save failed)"
		}
	}
	return s
}
