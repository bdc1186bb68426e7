// Command publish computes a range of years and stores them in the SQLite
// database served by the API.
//
// Usage:
//
//	go run ./cmd/publish -from 2020 -to 2040 -db data/helgdagar.db
//
// Publishing a year that is already stored replaces it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/zapponejosh/helgdagar/internal/database"
	"github.com/zapponejosh/helgdagar/internal/publisher"
)

func main() {
	from := flag.Int("from", time.Now().Year(), "First year to publish")
	to := flag.Int("to", time.Now().Year()+10, "Last year to publish (inclusive)")
	dbPath := flag.String("db", "data/helgdagar.db", "Path to SQLite database")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, *from, *to, *dbPath, logger); err != nil {
		logger.Error("publish failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, from, to int, dbPath string, logger *slog.Logger) error {
	if from > to {
		return fmt.Errorf("-from %d is after -to %d", from, to)
	}
	startTime := time.Now()

	db, err := database.Open(database.DefaultConfig(dbPath), logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	res, err := publisher.New(db, nil, logger).PublishRange(ctx, from, to)
	if err != nil {
		return err
	}

	logger.Info("publish complete",
		slog.Int("from", from),
		slog.Int("to", to),
		slog.Int("years", res.Years),
		slog.Int("holidays", res.Holidays),
		slog.Int("collisions", res.Collisions),
		slog.Duration("duration", time.Since(startTime)),
	)
	return nil
}
