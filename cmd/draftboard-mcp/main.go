// Command draftboard-mcp serves the draft board to MCP clients over stdio.
// Logs go to stderr; stdout belongs to the protocol.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/malexanderboyd/pwr9-draftboard/internal"
	"github.com/malexanderboyd/pwr9-draftboard/internal/app"
	"github.com/malexanderboyd/pwr9-draftboard/internal/config"
	"github.com/malexanderboyd/pwr9-draftboard/internal/mcptools"
)

var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "draftboard-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	if err := internal.ConfigureLogger(cfg.LogLevel, cfg.Development); err != nil {
		return err
	}
	logger := internal.GetLogger()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger.SugaredLogger)
	if err != nil {
		return err
	}
	defer a.Close()

	server := mcptools.NewServer(a.Director, version)

	g, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	g.Go(func() error {
		return a.Director.Listen(runCtx)
	})
	g.Go(func() error {
		defer cancel()
		logger.Infow("serving mcp over stdio", "version", version, "storage", cfg.Storage.Backend)
		if err := server.Run(runCtx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("mcp server: %w", err)
		}
		return nil
	})
	return g.Wait()
}
