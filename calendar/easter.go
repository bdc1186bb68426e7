package calendar

import "time"

// Gauss congruence constants valid for the Gregorian years 1900-2099.
const (
	gaussM = 24
	gaussN = 5
)

// Years for which EasterSunday is guaranteed to be a Sunday.
const (
	EasterExactFrom    = 1900
	EasterExactThrough = 2099
)

// EasterExact reports whether EasterSunday(year) is exact, i.e. year lies in
// [EasterExactFrom, EasterExactThrough].
func EasterExact(year int) bool {
	return year >= EasterExactFrom && year <= EasterExactThrough
}

// EasterSunday returns the date of Easter Sunday (påskdagen) for a
// Gregorian year using Gauss's Easter algorithm.
//
// The raw congruence lands on March 22+d+e, or April d+e-9 when that
// overflows March. Two corrections follow, each checked on its own guard:
//
//   - April 26 is never Easter, so it moves back a week to April 19.
//   - April 25 with d=28, e=6 and a>10 moves back a week to April 18.
//
// The m=24, n=5 constants hold for 1900-2099. Other years still get a March
// or April date but it is not guaranteed to be a Sunday.
func EasterSunday(year int) Date {
	a := year % 19
	b := year % 4
	c := year % 7
	d := (19*a + gaussM) % 30
	e := (2*b + 4*c + 6*d + gaussN) % 7
	f := 22 + d + e

	easter := Date{Year: year, Month: time.March, Day: f}
	if f > 31 {
		easter = Date{Year: year, Month: time.April, Day: f - 31}
	}

	if easter == (Date{Year: year, Month: time.April, Day: 26}) {
		easter = ShiftWeeks(easter, 1, Before)
	}

	if easter == (Date{Year: year, Month: time.April, Day: 25}) && d == 28 && e == 6 && a > 10 {
		easter = ShiftWeeks(easter, 1, Before)
	}

	return easter
}
