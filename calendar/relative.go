package calendar

import "time"

// Direction is the sense in which a relative date operator searches or shifts.
type Direction int

const (
	Before Direction = iota
	After
)

func (d Direction) String() string {
	if d == After {
		return "after"
	}
	return "before"
}

// step returns +1 for After and -1 for Before.
func (d Direction) step() int {
	if d == After {
		return 1
	}
	return -1
}

// ClosestWeekday walks from origin one day at a time in dir and returns the
// first date falling on target. If origin already falls on target it is
// returned unchanged, whichever the direction.
func ClosestWeekday(origin Date, target time.Weekday, dir Direction) Date {
	current := origin
	for i := 0; i < 7; i++ {
		if current.Weekday() == target {
			break
		}
		current = current.AddDays(dir.step())
	}
	return current
}

// NthWeekdayAfter finds the first weekday on or after origin and moves it
// n whole weeks forward.
func NthWeekdayAfter(origin Date, weekday time.Weekday, n int) Date {
	first := ClosestWeekday(origin, weekday, After)
	return ShiftWeeks(first, n, After)
}

// ShiftWeeks moves origin n weeks in dir.
func ShiftWeeks(origin Date, n int, dir Direction) Date {
	return origin.AddDays(dir.step() * n * 7)
}
