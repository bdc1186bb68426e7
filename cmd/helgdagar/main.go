// Command helgdagar prints the Swedish holidays of a year or describes a date.
//
// Usage:
//
//	go run ./cmd/helgdagar -year 2025
//	go run ./cmd/helgdagar -date 2024-06-21
//	go run ./cmd/helgdagar -year 2025 -json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/zapponejosh/helgdagar/calendar"
	"github.com/zapponejosh/helgdagar/holidays"
	"github.com/zapponejosh/helgdagar/workdays"
)

func main() {
	year := flag.Int("year", time.Now().Year(), "Year to list holidays for")
	date := flag.String("date", "", "Describe a single date (YYYY-MM-DD) instead of listing a year")
	asJSON := flag.Bool("json", false, "Write JSON instead of a table")
	flag.Parse()

	if err := run(os.Stdout, *year, *date, *asJSON); err != nil {
		fmt.Fprintln(os.Stderr, "helgdagar:", err)
		os.Exit(1)
	}
}

func run(w io.Writer, year int, date string, asJSON bool) error {
	if date != "" {
		info, err := holidays.New(nil).Day(date)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(w, info)
		}
		return writeDay(w, info)
	}

	list := holidays.HolidaysForYear(year)
	work := workdays.New().Count(
		calendar.Date{Year: year, Month: time.January, Day: 1},
		calendar.Date{Year: year, Month: time.December, Day: 31},
	)
	if asJSON {
		return writeJSON(w, map[string]any{"year": year, "holidays": list, "workdays": work})
	}
	return writeYear(w, year, list, work)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeDay(w io.Writer, info holidays.DayInfo) error {
	fmt.Fprintf(w, "%s  %s\n", info.Date, info.WeekdayName)
	switch {
	case info.IsHoliday:
		fmt.Fprintf(w, "  %s (%s)\n", *info.Holiday, *info.Kind)
	case info.IsWeekend:
		fmt.Fprintln(w, "  helg")
	default:
		fmt.Fprintln(w, "  vardag")
	}
	return nil
}

func writeYear(w io.Writer, year int, list []holidays.Holiday, work int) error {
	fmt.Fprintf(w, "=== Helgdagar %d ===\n\n", year)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, h := range list {
		weekday, err := calendar.WeekdayName(h.Date.Weekday())
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", h.Date, weekday, h.Name, h.Kind())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nArbetsdagar: %d\n", work)
	return nil
}
