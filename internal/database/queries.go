package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zapponejosh/helgdagar/calendar"
	"github.com/zapponejosh/helgdagar/holidays"
)

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Returns nil if parsing fails.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, ns.String); err == nil {
			return &t
		}
	}
	return nil
}

// =============================================================================
// Holiday Year Queries
// =============================================================================

// PublishYear stores the holidays of set, replacing any earlier copy of the
// same year.
func (db *DB) PublishYear(ctx context.Context, set *holidays.Set) error {
	list := set.Holidays()

	err := db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM holiday_years WHERE year = ?", set.Year()); err != nil {
			return fmt.Errorf("delete year %d: %w", set.Year(), err)
		}

		_, err := tx.ExecContext(ctx,
			"INSERT INTO holiday_years (year, holiday_count) VALUES (?, ?)",
			set.Year(), len(list),
		)
		if err != nil {
			return fmt.Errorf("insert year %d: %w", set.Year(), err)
		}

		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO holidays (year, date, name, kind) VALUES (?, ?, ?, ?)")
		if err != nil {
			return fmt.Errorf("prepare holiday insert: %w", err)
		}
		defer stmt.Close()

		for _, h := range list {
			if _, err := stmt.ExecContext(ctx, set.Year(), h.Date.String(), h.Name.String(), h.Kind().String()); err != nil {
				return fmt.Errorf("insert holiday %s: %w", h.Date, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	db.logger.Debug("published holiday year",
		"year", set.Year(),
		"holidays", len(list),
	)
	return nil
}

// GetYear returns the stored holidays of year in date order.
// Returns ErrNotFound if the year has not been published.
func (db *DB) GetYear(ctx context.Context, year int) ([]holidays.Holiday, error) {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT holiday_count FROM holiday_years WHERE year = ?", year,
	).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query year %d: %w", year, err)
	}

	rows, err := db.QueryContext(ctx,
		"SELECT date, name FROM holidays WHERE year = ? ORDER BY date", year)
	if err != nil {
		return nil, fmt.Errorf("query holidays for %d: %w", year, err)
	}
	defer rows.Close()

	list := make([]holidays.Holiday, 0, count)
	for rows.Next() {
		var dateStr, nameStr string
		if err := rows.Scan(&dateStr, &nameStr); err != nil {
			return nil, fmt.Errorf("scan holiday: %w", err)
		}

		date, err := calendar.Parse(dateStr)
		if err != nil {
			return nil, fmt.Errorf("stored holiday date: %w", err)
		}
		name, err := holidays.ParseName(nameStr)
		if err != nil {
			return nil, fmt.Errorf("stored holiday name: %w", err)
		}
		list = append(list, holidays.Holiday{Date: date, Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate holidays: %w", err)
	}

	return list, nil
}

// ListYears returns every published year, oldest first.
func (db *DB) ListYears(ctx context.Context) ([]PublishedYear, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT year, holiday_count, published_at FROM holiday_years ORDER BY year")
	if err != nil {
		return nil, fmt.Errorf("query published years: %w", err)
	}
	defer rows.Close()

	var years []PublishedYear
	for rows.Next() {
		var py PublishedYear
		var publishedAt sql.NullString
		if err := rows.Scan(&py.Year, &py.HolidayCount, &publishedAt); err != nil {
			return nil, fmt.Errorf("scan published year: %w", err)
		}
		py.PublishedAt = parseTimestamp(publishedAt)
		years = append(years, py)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate published years: %w", err)
	}

	return years, nil
}

// DeleteYear removes a published year and its holidays.
// Returns ErrNotFound if the year was not published.
func (db *DB) DeleteYear(ctx context.Context, year int) error {
	res, err := db.ExecContext(ctx, "DELETE FROM holiday_years WHERE year = ?", year)
	if err != nil {
		return fmt.Errorf("delete year %d: %w", year, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
