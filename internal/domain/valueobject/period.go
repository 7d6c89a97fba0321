// Package valueobject contains domain value objects for the Catering Ops system.
package valueobject

import (
	"strings"
	"time"
)

// Period is a named, user-selectable calendar window.
type Period string

const (
	PeriodAllTime   Period = "all_time"
	PeriodToday     Period = "today"
	PeriodThisWeek  Period = "this_week"
	PeriodLastWeek  Period = "last_week"
	PeriodThisMonth Period = "this_month"
	PeriodLastMonth Period = "last_month"
	PeriodThisYear  Period = "this_year"
	PeriodLastYear  Period = "last_year"
)

// Periods lists every selectable period in display order.
var Periods = []Period{
	PeriodAllTime,
	PeriodToday,
	PeriodThisWeek,
	PeriodLastWeek,
	PeriodThisMonth,
	PeriodLastMonth,
	PeriodThisYear,
	PeriodLastYear,
}

// ParsePeriod parses a period name case-insensitively.
// Both "this_week" and "THIS_WEEK" are accepted.
func ParsePeriod(s string) (Period, bool) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Periods {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// IsValid reports whether p is one of the known periods.
func (p Period) IsValid() bool {
	_, ok := ParsePeriod(string(p))
	return ok
}

// IncludesToday reports whether the period's range ends on the current day.
func (p Period) IncludesToday() bool {
	switch p {
	case PeriodToday, PeriodThisWeek, PeriodThisMonth, PeriodThisYear, PeriodAllTime:
		return true
	default:
		return false
	}
}

// DateRange is a concrete, inclusive span of calendar days.
// Start and End are both at local midnight of their day.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls on a calendar day within the range.
func (r DateRange) Contains(t time.Time) bool {
	t = t.In(r.Start.Location())
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return !day.Before(r.Start) && !day.After(r.End)
}

// EndExclusive returns midnight of the day after End, for half-open queries.
func (r DateRange) EndExclusive() time.Time {
	return r.End.AddDate(0, 0, 1)
}
