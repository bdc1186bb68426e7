package holidays

import (
	"fmt"
	"time"

	"github.com/zapponejosh/helgdagar/calendar"
)

// Provider supplies the holiday set of a year.
type Provider interface {
	ForYear(year int) *Set
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(year int) *Set

// ForYear calls f(year).
func (f ProviderFunc) ForYear(year int) *Set {
	return f(year)
}

// Calendar answers date queries against the holiday sets of a Provider.
// Dates are passed as YYYY-MM-DD strings; malformed strings fail with an
// error wrapping calendar.ErrInvalidDateFormat.
type Calendar struct {
	sets Provider
}

// New returns a Calendar backed by p. A nil p builds every set on demand.
func New(p Provider) *Calendar {
	if p == nil {
		p = ProviderFunc(ForYear)
	}
	return &Calendar{sets: p}
}

// DayInfo describes a single date.
type DayInfo struct {
	Date        calendar.Date `json:"date"`
	Weekday     time.Weekday  `json:"weekday"`
	WeekdayName string        `json:"weekday_name"`
	IsWeekend   bool          `json:"is_weekend"`
	IsHoliday   bool          `json:"is_holiday"`
	Holiday     *Name         `json:"holiday,omitempty"`
	Kind        *Kind         `json:"kind,omitempty"`
}

// IsWeekend reports whether date falls on a Saturday or Sunday.
func (c *Calendar) IsWeekend(date string) (bool, error) {
	d, err := calendar.Parse(date)
	if err != nil {
		return false, err
	}
	return calendar.IsWeekend(d), nil
}

// WeekdayName returns the Swedish name of the weekday of date.
func (c *Calendar) WeekdayName(date string) (string, error) {
	d, err := calendar.Parse(date)
	if err != nil {
		return "", err
	}
	name, err := calendar.WeekdayName(d.Weekday())
	if err != nil {
		return "", fmt.Errorf("weekday of %s: %w", date, err)
	}
	return name, nil
}

// IsHoliday reports whether date is in the holiday set of its year.
func (c *Calendar) IsHoliday(date string) (bool, error) {
	d, err := calendar.Parse(date)
	if err != nil {
		return false, err
	}
	return c.sets.ForYear(d.Year).Contains(d), nil
}

// HolidayName returns the holiday on date. ok is false when date is not a
// holiday.
func (c *Calendar) HolidayName(date string) (name Name, ok bool, err error) {
	d, err := calendar.Parse(date)
	if err != nil {
		return 0, false, err
	}
	name, ok = c.sets.ForYear(d.Year).Lookup(d)
	return name, ok, nil
}

// HolidaysForYear returns the holidays of year in date order.
func (c *Calendar) HolidaysForYear(year int) []Holiday {
	return c.sets.ForYear(year).Holidays()
}

// HolidaysBetween returns the holidays from from through to, inclusive.
func (c *Calendar) HolidaysBetween(from, to calendar.Date) []Holiday {
	return forRange(c.sets.ForYear, from, to)
}

// Day collects everything known about date.
func (c *Calendar) Day(date string) (DayInfo, error) {
	d, err := calendar.Parse(date)
	if err != nil {
		return DayInfo{}, err
	}
	return c.DayOf(d)
}

// DayOf is Day for an already parsed date.
func (c *Calendar) DayOf(d calendar.Date) (DayInfo, error) {
	weekdayName, err := calendar.WeekdayName(d.Weekday())
	if err != nil {
		return DayInfo{}, fmt.Errorf("weekday of %s: %w", d, err)
	}

	info := DayInfo{
		Date:        d,
		Weekday:     d.Weekday(),
		WeekdayName: weekdayName,
		IsWeekend:   calendar.IsWeekend(d),
	}
	if name, ok := c.sets.ForYear(d.Year).Lookup(d); ok {
		kind := name.Kind()
		info.IsHoliday = true
		info.Holiday = &name
		info.Kind = &kind
	}
	return info, nil
}

var defaultCalendar = New(nil)

// IsWeekend reports whether date falls on a Saturday or Sunday.
func IsWeekend(date string) (bool, error) {
	return defaultCalendar.IsWeekend(date)
}

// WeekdayName returns the Swedish name of the weekday of date, e.g. "lördag".
func WeekdayName(date string) (string, error) {
	return defaultCalendar.WeekdayName(date)
}

// IsHoliday reports whether date is a Swedish holiday or eve.
func IsHoliday(date string) (bool, error) {
	return defaultCalendar.IsHoliday(date)
}

// HolidayName returns the holiday on date, if any.
func HolidayName(date string) (Name, bool, error) {
	return defaultCalendar.HolidayName(date)
}

// HolidaysForYear returns the holidays of year in date order.
func HolidaysForYear(year int) []Holiday {
	return defaultCalendar.HolidaysForYear(year)
}
