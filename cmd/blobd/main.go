// Command blobd serves the document deletion endpoint used by QuoteKeeper
// clients. "blobd token <owner-id>" prints a signed access token instead.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/quotekeeper/internal/auth"
	"github.com/dmitrijs2005/quotekeeper/internal/flagx"
	"github.com/dmitrijs2005/quotekeeper/internal/logging"
	"github.com/dmitrijs2005/quotekeeper/internal/server"
	"github.com/dmitrijs2005/quotekeeper/internal/server/config"
)

func main() {
	args := os.Args[1:]
	flags, command := flagx.SplitCommand(args, config.ValueFlags())

	cfg, err := config.LoadConfig(flags)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if len(command) > 0 {
		if command[0] != "token" || len(command) != 2 {
			log.Fatalf("usage: blobd [flags] [token <owner-id>]")
		}
		token, err := auth.GenerateToken(command[1], []byte(cfg.SecretKey), cfg.TokenValidity)
		if err != nil {
			log.Fatalf("token: %v", err)
		}
		fmt.Println(token)
		return
	}

	ctx := context.Background()
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}
