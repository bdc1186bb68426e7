// Package main is the entry point for the holiday calendar API server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/zapponejosh/helgdagar/holidays"
	"github.com/zapponejosh/helgdagar/internal/api"
	"github.com/zapponejosh/helgdagar/internal/config"
	"github.com/zapponejosh/helgdagar/internal/database"
	"github.com/zapponejosh/helgdagar/internal/logger"
	"github.com/zapponejosh/helgdagar/internal/publisher"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.Setup(cfg)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting holiday API",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("log_level", cfg.LogLevel),
		slog.Bool("holiday_cache", cfg.HolidayCache),
	)

	db, err := database.Open(database.DefaultConfig(cfg.DatabasePath), log)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return err
	}

	var sets holidays.Provider
	if cfg.HolidayCache {
		sets = holidays.NewCache()
	}

	if cfg.PublishSchedule != "" {
		c := cron.New(cron.WithLocation(time.UTC))
		pub := publisher.New(db, sets, log)
		if _, err := pub.Schedule(c, cfg.PublishSchedule, cfg.PublishAhead, time.Minute); err != nil {
			return err
		}
		c.Start()
		defer func() { <-c.Stop().Done() }()

		log.Info("scheduled holiday publishing",
			slog.String("schedule", cfg.PublishSchedule),
			slog.Int("ahead", cfg.PublishAhead),
		)
	}

	handlers := api.NewHandlers(db, sets, log)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.SetupRoutes(handlers, cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("holiday API ready", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
