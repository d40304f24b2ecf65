// Package server wires configuration, object storage and the HTTP API of
// blobd and runs them until the process is signalled.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/quotekeeper/internal/logging"
	"github.com/dmitrijs2005/quotekeeper/internal/server/blobstore"
	"github.com/dmitrijs2005/quotekeeper/internal/server/config"
	"github.com/dmitrijs2005/quotekeeper/internal/server/httpapi"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *http.Server
}

// NewApp builds the storage driver named by c and the HTTP server around it.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	blobs, err := blobstore.New(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	h := httpapi.NewHandler(blobs, c.BlobKeyMarker, c.SecretKey, logger, httpapi.NewMetrics())

	return &App{
		config: c,
		logger: logger,
		server: &http.Server{Addr: c.ListenAddr, Handler: h.Routes()},
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run listens on the configured address and serves until ctx is done or
// the process receives SIGINT, SIGTERM or SIGQUIT.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	lis, err := net.Listen("tcp", app.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.config.ListenAddr, err)
	}
	return app.Serve(ctx, lis)
}

// Serve accepts connections on lis until ctx is done, then shuts down
// gracefully within the configured timeout.
func (app *App) Serve(ctx context.Context, lis net.Listener) error {
	app.logger.Info(ctx, "Starting app...", "addr", lis.Addr().String(), "driver", app.config.BlobDriver)

	var (
		wg       sync.WaitGroup
		serveErr error
	)
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "http server failed", "error", err)
			serveErr = err
			cancelFunc()
		}
	}()

	<-ctx.Done()
	app.logger.Info(context.Background(), "Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	err := app.server.Shutdown(shutdownCtx)
	wg.Wait()

	if serveErr != nil {
		return serveErr
	}
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
