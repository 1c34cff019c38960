package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pefman/champion-duel/internal/config"
	"github.com/pefman/champion-duel/internal/logging"
	"github.com/pefman/champion-duel/internal/server"
	"github.com/pefman/champion-duel/internal/session"
	"github.com/pefman/champion-duel/internal/stats"
)

// Build metadata injected via -ldflags at build time
var (
	buildVersion = "dev"
	buildTime    = ""
)

func main() {
	cfgPath := flag.String("config", os.Getenv("DUEL_CONFIG"), "optional YAML config file")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		fmt.Fprintf(os.Stderr, "duel-game: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	cfg.Version = buildVersion

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := session.NewRegistry(session.SeededSources(cfg.Seed), log.Named("session"))
	go sessions.Run(ctx, cfg.SessionTTL, cfg.SweepEvery)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.New(cfg.Version, log.Named("http"), sessions, stats.NewBoard()).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("champion duel listening",
			zap.String("addr", cfg.Addr),
			zap.String("version", buildVersion),
			zap.String("built", buildTime),
			zap.Int64("seed", cfg.Seed))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
