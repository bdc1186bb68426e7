// Package publisher writes computed holiday years into the store, either in
// one batch or on a cron schedule that keeps upcoming years available.
package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/zapponejosh/helgdagar/holidays"
	"github.com/zapponejosh/helgdagar/internal/database"
)

// Result summarises a batch of published years.
type Result struct {
	Years      int // years written
	Holidays   int // holiday rows written
	Collisions int // years where two holidays share a date
}

// Publisher computes holiday sets and stores them.
type Publisher struct {
	db     *database.DB
	sets   holidays.Provider
	logger *slog.Logger
}

// New returns a Publisher. A nil sets builds every year on demand.
func New(db *database.DB, sets holidays.Provider, logger *slog.Logger) *Publisher {
	if sets == nil {
		sets = holidays.ProviderFunc(holidays.ForYear)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{db: db, sets: sets, logger: logger}
}

// PublishRange publishes every year from from through to, replacing years
// that are already stored. It stops at the first error or when ctx is done.
func (p *Publisher) PublishRange(ctx context.Context, from, to int) (Result, error) {
	var res Result
	if from > to {
		return res, fmt.Errorf("publish range %d-%d: first year is after last year", from, to)
	}

	for year := from; year <= to; year++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := p.publish(ctx, year, &res); err != nil {
			return res, err
		}
	}
	return res, nil
}

// EnsureUpcoming publishes the year of now and the ahead years after it,
// skipping any that are already stored. It returns the number of years
// written.
func (p *Publisher) EnsureUpcoming(ctx context.Context, now time.Time, ahead int) (int, error) {
	var res Result
	first := now.Year()
	for year := first; year <= first+ahead; year++ {
		_, err := p.db.GetYear(ctx, year)
		if err == nil {
			continue
		}
		if !database.IsNotFound(err) {
			return res.Years, fmt.Errorf("check year %d: %w", year, err)
		}
		if err := p.publish(ctx, year, &res); err != nil {
			return res.Years, err
		}
	}
	return res.Years, nil
}

func (p *Publisher) publish(ctx context.Context, year int, res *Result) error {
	set := p.sets.ForYear(year)
	if err := p.db.PublishYear(ctx, set); err != nil {
		return fmt.Errorf("publish %d: %w", year, err)
	}

	res.Years++
	res.Holidays += set.Len()
	if set.Len() < len(holidays.Names()) {
		res.Collisions++
		p.logger.Info("holidays share a date",
			slog.Int("year", year),
			slog.Int("dates", set.Len()),
		)
	}

	p.logger.Debug("published year", slog.Int("year", year))
	return nil
}

// Schedule registers EnsureUpcoming on c under spec. Each run is bounded by
// timeout and reads the clock at the time it fires.
func (p *Publisher) Schedule(c *cron.Cron, spec string, ahead int, timeout time.Duration) (cron.EntryID, error) {
	id, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		n, err := p.EnsureUpcoming(ctx, time.Now(), ahead)
		if err != nil {
			p.logger.Error("scheduled publish failed", slog.Any("error", err))
			return
		}
		p.logger.Info("scheduled publish complete", slog.Int("years_written", n))
	})
	if err != nil {
		return 0, fmt.Errorf("schedule publish %q: %w", spec, err)
	}
	return id, nil
}
