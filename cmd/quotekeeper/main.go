// Command quotekeeper manages quotes, templates and branding profiles in a
// local or remote store.
package main

import (
	"bufio"
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/quotekeeper/internal/client/cli"
	"github.com/dmitrijs2005/quotekeeper/internal/client/config"
	"github.com/dmitrijs2005/quotekeeper/internal/flagx"
	"github.com/dmitrijs2005/quotekeeper/internal/logging"
)

func main() {
	flags, command := flagx.SplitCommand(os.Args[1:], config.ValueFlags())

	cfg, err := config.LoadConfig(flags)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	logger := logging.NewJSONLogger(os.Stderr, slog.LevelWarn)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	err = app.Run(ctx, command, bufio.NewScanner(os.Stdin))
	if cerr := app.Close(); cerr != nil {
		log.Printf("close: %v", cerr)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}
