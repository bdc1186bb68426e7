package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownWeekday is returned when a weekday has no Swedish name.
var ErrUnknownWeekday = errors.New("unknown weekday")

// weekdayNames is indexed by time.Weekday (Sunday=0 ... Saturday=6).
var weekdayNames = [...]string{
	time.Sunday:    "söndag",
	time.Monday:    "måndag",
	time.Tuesday:   "tisdag",
	time.Wednesday: "onsdag",
	time.Thursday:  "torsdag",
	time.Friday:    "fredag",
	time.Saturday:  "lördag",
}

// WeekdayName returns the lower-case Swedish name of wd.
func WeekdayName(wd time.Weekday) (string, error) {
	if wd < time.Sunday || int(wd) >= len(weekdayNames) {
		return "", fmt.Errorf("%w: %d", ErrUnknownWeekday, int(wd))
	}
	return weekdayNames[wd], nil
}

// IsWeekend reports whether d falls on a Saturday or Sunday.
func IsWeekend(d Date) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
