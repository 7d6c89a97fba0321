// Package report contains order reporting use cases and the calendar math they share.
package report

import (
	"time"

	"github.com/catering-ops/backend/internal/domain/valueobject"
)

// DayKeyLayout is the layout of bucket keys and date parameters.
const DayKeyLayout = "2006-01-02"

// StartOfDay returns local midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays shifts t by n calendar days, keeping the wall clock time.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// StartOfWeek returns midnight of the Monday of t's week.
// Sunday belongs to the week that started six days earlier.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return AddDays(day, -(weekday - 1))
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns midnight of the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// StartOfYear returns midnight of January 1st of t's year.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// EndOfYear returns midnight of December 31st of t's year.
func EndOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, t.Location())
}

// DayKey formats the calendar day of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ParseDay parses a YYYY-MM-DD date as midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayKeyLayout, s, loc)
}

// DaysInRange counts the calendar days of r, both ends included.
// It returns 0 when End is before Start.
func DaysInRange(r valueobject.DateRange) int {
	// Civil dates in UTC so DST transitions never yield a 23 or 25 hour day.
	sy, sm, sd := r.Start.Date()
	ey, em, ed := r.End.Date()
	start := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start)/(24*time.Hour)) + 1
}

// PreviousRange returns the range of equal length that ends the day before r starts.
func PreviousRange(r valueobject.DateRange) valueobject.DateRange {
	n := DaysInRange(r)
	return valueobject.DateRange{
		Start: AddDays(r.Start, -n),
		End:   AddDays(r.Start, -1),
	}
}
