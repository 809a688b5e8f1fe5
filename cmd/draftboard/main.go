package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/malexanderboyd/pwr9-draftboard/internal"
	"github.com/malexanderboyd/pwr9-draftboard/internal/api"
	"github.com/malexanderboyd/pwr9-draftboard/internal/app"
	"github.com/malexanderboyd/pwr9-draftboard/internal/config"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "draftboard: %v\n", err)
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

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: api.NewRouter(api.RouterConfig{
			Director:       a.Director,
			WebRoot:        cfg.WebRoot,
			AllowedOrigins: cfg.AllowedOrigins,
			Logger:         logger.Named("http"),
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Director.Listen(gctx)
	})
	g.Go(func() error {
		logger.Infow("serving draft board",
			"addr", srv.Addr,
			"teams", cfg.Teams,
			"rounds", cfg.Rounds,
			"manual_pick_entry", cfg.ManualPickEntry,
			"storage", cfg.Storage.Backend,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Infow("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
