package report

import (
	"time"

	domainerror "github.com/catering-ops/backend/internal/domain/error"
	"github.com/catering-ops/backend/internal/domain/valueobject"
)

// ChartFallbackDays is the chart window used when the period has no lower bound.
const ChartFallbackDays = 30

// Clock returns the current time.
type Clock func() time.Time

// ResolvePeriod maps a period to a concrete range of calendar days relative to now.
// now is interpreted in its own location.
func ResolvePeriod(period valueobject.Period, now time.Time) (valueobject.DateRange, error) {
	today := StartOfDay(now)

	switch period {
	case valueobject.PeriodToday:
		return valueobject.DateRange{Start: today, End: today}, nil
	case valueobject.PeriodThisWeek:
		return valueobject.DateRange{Start: StartOfWeek(today), End: today}, nil
	case valueobject.PeriodLastWeek:
		start := AddDays(StartOfWeek(today), -7)
		return valueobject.DateRange{Start: start, End: AddDays(start, 6)}, nil
	case valueobject.PeriodThisMonth:
		return valueobject.DateRange{Start: StartOfMonth(today), End: today}, nil
	case valueobject.PeriodLastMonth:
		// Day 1 minus one month never overflows into the wrong month.
		prev := StartOfMonth(today).AddDate(0, -1, 0)
		return valueobject.DateRange{Start: prev, End: EndOfMonth(prev)}, nil
	case valueobject.PeriodThisYear:
		return valueobject.DateRange{Start: StartOfYear(today), End: today}, nil
	case valueobject.PeriodLastYear:
		prev := StartOfYear(today).AddDate(-1, 0, 0)
		return valueobject.DateRange{Start: prev, End: EndOfYear(prev)}, nil
	case valueobject.PeriodAllTime:
		return valueobject.DateRange{Start: AddDays(today, -(ChartFallbackDays - 1)), End: today}, nil
	default:
		return valueobject.DateRange{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidPeriod,
			"period must be one of: all_time, today, this_week, last_week, this_month, last_month, this_year, last_year",
			domainerror.ErrInvalidPeriod,
		)
	}
}

// parsePeriod validates a raw period parameter.
func parsePeriod(raw string) (valueobject.Period, error) {
	period, ok := valueobject.ParsePeriod(raw)
	if !ok {
		return "", domainerror.NewReportError(
			domainerror.ErrCodeInvalidPeriod,
			"period must be one of: all_time, today, this_week, last_week, this_month, last_month, this_year, last_year",
			domainerror.ErrInvalidPeriod,
		)
	}
	return period, nil
}
