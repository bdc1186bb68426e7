package holidays

import (
	"time"

	"github.com/zapponejosh/helgdagar/calendar"
)

// Easter returns påskdagen.
func Easter(year int) calendar.Date {
	return calendar.EasterSunday(year)
}

// GoodFriday returns långfredagen, the Friday before Easter Sunday.
func GoodFriday(year int) calendar.Date {
	return calendar.ClosestWeekday(Easter(year), time.Friday, calendar.Before)
}

// EasterMonday returns annandag påsk.
func EasterMonday(year int) calendar.Date {
	return Easter(year).AddDays(1)
}

// AscensionDay returns kristi himmelsfärdsdag, the sixth Thursday after
// Easter Sunday counting the first one following it.
func AscensionDay(year int) calendar.Date {
	return calendar.NthWeekdayAfter(Easter(year), time.Thursday, 5)
}

// WhitSunday returns pingstdagen, seven weeks after Easter Sunday.
func WhitSunday(year int) calendar.Date {
	return calendar.NthWeekdayAfter(Easter(year), time.Sunday, 7)
}

// MidsummerEve returns midsommarafton, the Friday between June 19 and 25.
func MidsummerEve(year int) calendar.Date {
	return calendar.ClosestWeekday(calendar.Date{Year: year, Month: time.June, Day: 19}, time.Friday, calendar.After)
}

// MidsummerDay returns midsommardagen, the Saturday between June 20 and 26.
func MidsummerDay(year int) calendar.Date {
	return calendar.ClosestWeekday(calendar.Date{Year: year, Month: time.June, Day: 20}, time.Saturday, calendar.After)
}

// AllSaintsDay returns alla helgons dag, the Saturday between October 31
// and November 6.
func AllSaintsDay(year int) calendar.Date {
	return calendar.ClosestWeekday(calendar.Date{Year: year, Month: time.October, Day: 31}, time.Saturday, calendar.After)
}

// On returns the date n falls on in year, or the zero Date for an unknown
// name. Unlike a Set it reports every holiday, including one that shares its
// date with another.
func (n Name) On(year int) calendar.Date {
	switch n {
	case Nyarsdagen:
		return fixed(year, time.January, 1)
	case TrettondedagJul:
		return fixed(year, time.January, 6)
	case Langfredagen:
		return GoodFriday(year)
	case Paskdagen:
		return Easter(year)
	case AnnandagPask:
		return EasterMonday(year)
	case KristiHimmelsfardsdag:
		return AscensionDay(year)
	case ForstaMaj:
		return fixed(year, time.May, 1)
	case Pingstdagen:
		return WhitSunday(year)
	case Nationaldagen:
		return fixed(year, time.June, 6)
	case Midsommardagen:
		return MidsummerDay(year)
	case AllaHelgonsDag:
		return AllSaintsDay(year)
	case Juldagen:
		return fixed(year, time.December, 25)
	case AnnandagJul:
		return fixed(year, time.December, 26)
	case Julafton:
		return fixed(year, time.December, 24)
	case Midsommarafton:
		return MidsummerEve(year)
	case Nyarsafton:
		return fixed(year, time.December, 31)
	default:
		return calendar.Date{}
	}
}
