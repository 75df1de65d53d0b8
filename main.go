package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/99tech/users-api/config"
	"github.com/99tech/users-api/sqlite"
	"github.com/99tech/users-api/user"
	"github.com/99tech/users-api/web"
)

func main() {
	cfg := config.ParseConfig()

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	defer logger.Sync() //nolint:errcheck // stderr sync failure is not actionable

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan

		logger.Info("received signal, shutting down")

		cancel()
	}()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("exited with error", zap.Error(err))

		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	db, err := sqlite.Open(cfg.DatabasePath, cfg.QueryTimeout)
	if err != nil {
		return err
	}

	svc := user.NewService(sqlite.NewUserRepository(db))

	logger.Info("starting server",
		zap.String("addr", cfg.Addr),
		zap.String("db", cfg.DatabasePath),
	)

	err = web.Start(ctx, web.Config{
		Addr:    cfg.Addr,
		Debug:   cfg.Debug,
		Logger:  logger,
		Service: svc,
	})

	return multierr.Append(err, db.Close())
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}
