package core

import "time"

// Direction selects which neighbouring month to navigate to.
type Direction string

const (
	Prev Direction = "prev"
	Next Direction = "next"
)

// MonthRef addresses a calendar month with a zero-based month index
// (January is 0).
type MonthRef struct {
	Month int
	Year  int
}

// NavigateMonth returns the previous or next calendar month with standard
// carry/borrow at year boundaries. It does not enforce the forward cap;
// callers gate "next" on CanAdvance.
func NavigateMonth(month, year int, dir Direction) MonthRef {
	switch dir {
	case Prev:
		month--
		if month < 0 {
			month = 11
			year--
		}
	case Next:
		month++
		if month > 11 {
			month = 0
			year++
		}
	}
	return MonthRef{Month: month, Year: year}
}

// CanAdvance reports whether forward navigation from (month, year) is
// allowed: true only while the period is strictly before the current
// real-world month. This is a hard ceiling, not a UI hint.
func CanAdvance(month, year int, now time.Time) bool {
	cur := CurrentMonth(now)
	if year != cur.Year {
		return year < cur.Year
	}
	return month < cur.Month
}

// CurrentMonth returns the real-world current month reference. Jumping to the
// current period is idempotent regardless of the caller's position.
func CurrentMonth(now time.Time) MonthRef {
	return MonthRef{Month: int(now.UTC().Month()) - 1, Year: now.UTC().Year()}
}
