package holidays

import (
	"slices"
	"time"

	"github.com/zapponejosh/helgdagar/calendar"
)

// Holiday is a named holiday on a date.
type Holiday struct {
	Date calendar.Date `json:"date"`
	Name Name          `json:"name"`
}

// Kind is shorthand for h.Name.Kind().
func (h Holiday) Kind() Kind {
	return h.Name.Kind()
}

// Set is the holiday calendar of a single year. A Set is never modified after
// ForYear returns it and may be shared between goroutines.
type Set struct {
	year   int
	byDate map[calendar.Date]Name
}

// ForYear builds the holiday calendar of year.
//
// Holidays are inserted in a fixed order: the allmänna helgdagar first, then
// the three eves. If two holidays ever land on the same date the one inserted
// later replaces the earlier one.
func ForYear(year int) *Set {
	s := &Set{year: year, byDate: make(map[calendar.Date]Name, 16)}

	// Lag (1989:253) om allmänna helgdagar
	s.put(fixed(year, time.January, 1), Nyarsdagen)
	s.put(fixed(year, time.January, 6), TrettondedagJul)
	s.put(GoodFriday(year), Langfredagen)
	s.put(Easter(year), Paskdagen)
	s.put(EasterMonday(year), AnnandagPask)
	s.put(AscensionDay(year), KristiHimmelsfardsdag)
	s.put(fixed(year, time.May, 1), ForstaMaj)
	s.put(WhitSunday(year), Pingstdagen)
	s.put(fixed(year, time.June, 6), Nationaldagen)
	s.put(MidsummerDay(year), Midsommardagen)
	s.put(AllSaintsDay(year), AllaHelgonsDag)
	s.put(fixed(year, time.December, 25), Juldagen)
	s.put(fixed(year, time.December, 26), AnnandagJul)

	// Semesterlag (1977:480)
	s.put(fixed(year, time.December, 24), Julafton)
	s.put(MidsummerEve(year), Midsommarafton)
	s.put(fixed(year, time.December, 31), Nyarsafton)

	return s
}

func fixed(year int, month time.Month, day int) calendar.Date {
	return calendar.Date{Year: year, Month: month, Day: day}
}

func (s *Set) put(d calendar.Date, name Name) {
	s.byDate[d] = name
}

// Year returns the year the set was built for.
func (s *Set) Year() int {
	return s.year
}

// Len returns the number of distinct holiday dates.
func (s *Set) Len() int {
	return len(s.byDate)
}

// Lookup returns the holiday on d, if any.
func (s *Set) Lookup(d calendar.Date) (Name, bool) {
	name, ok := s.byDate[d]
	return name, ok
}

// Contains reports whether d is a holiday.
func (s *Set) Contains(d calendar.Date) bool {
	_, ok := s.byDate[d]
	return ok
}

// Holidays returns the holidays of the year in date order.
func (s *Set) Holidays() []Holiday {
	list := make([]Holiday, 0, len(s.byDate))
	for d, name := range s.byDate {
		list = append(list, Holiday{Date: d, Name: name})
	}
	slices.SortFunc(list, func(a, b Holiday) int {
		return a.Date.Compare(b.Date)
	})
	return list
}

// ForRange returns the holidays from from through to, inclusive, in date
// order. It returns nil if to is before from.
func ForRange(from, to calendar.Date) []Holiday {
	return forRange(ForYear, from, to)
}

func forRange(build func(int) *Set, from, to calendar.Date) []Holiday {
	if to.Before(from) {
		return nil
	}
	var list []Holiday
	for year := from.Year; year <= to.Year; year++ {
		for _, h := range build(year).Holidays() {
			if h.Date.Before(from) || h.Date.After(to) {
				continue
			}
			list = append(list, h)
		}
	}
	return list
}
