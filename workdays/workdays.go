// Package workdays counts Swedish working days: Monday to Friday, except the
// allmänna helgdagar and the julafton, midsommarafton and nyårsafton eves.
package workdays

import (
	"time"

	cal "github.com/rickar/cal/v2"

	"github.com/zapponejosh/helgdagar/calendar"
	"github.com/zapponejosh/helgdagar/holidays"
)

// Calendar answers working-day questions. It is safe for concurrent use.
type Calendar struct {
	bc *cal.BusinessCalendar
}

// New returns a Calendar that closes on every Swedish holiday and eve.
func New() *Calendar {
	bc := cal.NewBusinessCalendar()
	for _, name := range holidays.Names() {
		bc.AddHoliday(holiday(name))
	}
	return &Calendar{bc: bc}
}

func holiday(name holidays.Name) *cal.Holiday {
	return &cal.Holiday{
		Name: name.String(),
		Func: func(_ *cal.Holiday, year int) time.Time {
			return name.On(year).Time()
		},
	}
}

// IsWorkday reports whether d is a working day.
func (c *Calendar) IsWorkday(d calendar.Date) bool {
	return c.bc.IsWorkday(d.Time())
}

// Closed returns the holiday name d is closed for. ok is false for weekdays
// that are not holidays and for weekends without one.
func (c *Calendar) Closed(d calendar.Date) (name string, ok bool) {
	actual, observed, h := c.bc.IsHoliday(d.Time())
	if !actual && !observed || h == nil {
		return "", false
	}
	return h.Name, true
}

// Count returns the number of working days from from through to, inclusive.
// It returns 0 if to is before from.
func (c *Calendar) Count(from, to calendar.Date) int {
	if to.Before(from) {
		return 0
	}
	return c.bc.WorkdaysInRange(from.Time(), to.Time())
}

// Add returns the working day n working days after d, or before it when n is
// negative. d itself is never counted; Add(d, 0) returns d.
func (c *Calendar) Add(d calendar.Date, n int) calendar.Date {
	step := 1
	if n < 0 {
		step, n = -1, -n
	}
	for n > 0 {
		d = d.AddDays(step)
		if c.IsWorkday(d) {
			n--
		}
	}
	return d
}
