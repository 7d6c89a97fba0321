package report

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/catering-ops/backend/internal/domain/error"
	"github.com/catering-ops/backend/internal/domain/valueobject"
)

func TestResolvePeriod(t *testing.T) {
	// Wednesday
	now := time.Date(2024, time.June, 12, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		period    valueobject.Period
		wantStart time.Time
		wantEnd   time.Time
	}{
		{valueobject.PeriodToday, day(2024, 6, 12), day(2024, 6, 12)},
		{valueobject.PeriodThisWeek, day(2024, 6, 10), day(2024, 6, 12)},
		{valueobject.PeriodLastWeek, day(2024, 6, 3), day(2024, 6, 9)},
		{valueobject.PeriodThisMonth, day(2024, 6, 1), day(2024, 6, 12)},
		{valueobject.PeriodLastMonth, day(2024, 5, 1), day(2024, 5, 31)},
		{valueobject.PeriodThisYear, day(2024, 1, 1), day(2024, 6, 12)},
		{valueobject.PeriodLastYear, day(2023, 1, 1), day(2023, 12, 31)},
		{valueobject.PeriodAllTime, day(2024, 5, 14), day(2024, 6, 12)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			got, err := ResolvePeriod(tt.period, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, got.Start)
			assert.Equal(t, tt.wantEnd, got.End)
		})
	}
}

func TestResolvePeriod_EndsTodayWhenPeriodIncludesToday(t *testing.T) {
	start := time.Date(2023, time.December, 25, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 100; i++ {
		now := start.AddDate(0, 0, i*3)
		for _, p := range valueobject.Periods {
			if !p.IncludesToday() {
				continue
			}
			got, err := ResolvePeriod(p, now)
			require.NoError(t, err)
			assert.Equal(t, StartOfDay(now), got.End, "period %s at %s", p, now)
			assert.False(t, got.Start.After(got.End))
		}
	}
}

func TestResolvePeriod_EdgeDates(t *testing.T) {
	t.Run("sunday this_week starts on the previous monday", func(t *testing.T) {
		got, err := ResolvePeriod(valueobject.PeriodThisWeek, day(2024, 6, 16))
		require.NoError(t, err)
		assert.Equal(t, day(2024, 6, 10), got.Start)
	})

	t.Run("last_month from the 31st of march is february", func(t *testing.T) {
		got, err := ResolvePeriod(valueobject.PeriodLastMonth, day(2024, 3, 31))
		require.NoError(t, err)
		assert.Equal(t, day(2024, 2, 1), got.Start)
		assert.Equal(t, day(2024, 2, 29), got.End)
	})

	t.Run("last_month in january is december", func(t *testing.T) {
		got, err := ResolvePeriod(valueobject.PeriodLastMonth, day(2024, 1, 15))
		require.NoError(t, err)
		assert.Equal(t, day(2023, 12, 1), got.Start)
		assert.Equal(t, day(2023, 12, 31), got.End)
	})
}

func TestResolvePeriod_Invalid(t *testing.T) {
	_, err := ResolvePeriod(valueobject.Period("fortnight"), day(2024, 6, 12))

	var reportErr *domainerror.ReportError
	require.True(t, errors.As(err, &reportErr))
	assert.Equal(t, domainerror.ErrCodeInvalidPeriod, reportErr.Code)
	assert.ErrorIs(t, err, domainerror.ErrInvalidPeriod)
}

func TestParsePeriod_CaseInsensitive(t *testing.T) {
	p, err := parsePeriod("THIS_WEEK")
	require.NoError(t, err)
	assert.Equal(t, valueobject.PeriodThisWeek, p)

	_, err = parsePeriod("")
	assert.ErrorIs(t, err, domainerror.ErrInvalidPeriod)
}
