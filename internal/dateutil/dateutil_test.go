package dateutil_test

import (
	"testing"
	"time"

	"github.com/snagasawa/nippo/internal/dateutil"
	"github.com/stretchr/testify/require"
)

func TestFormatJapanese(t *testing.T) {
	// 2024-01-15 is a Monday.
	d := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "2024年1月15日（月）", dateutil.FormatJapanese(d))

	// 2024-06-02 is a Sunday; no zero padding on month or day.
	d = time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "2024年6月2日（日）", dateutil.FormatJapanese(d))
}

func TestFormatJapaneseDateTime(t *testing.T) {
	ts := time.Date(2024, 3, 5, 9, 7, 0, 0, time.UTC)
	require.Equal(t, "2024年03月05日 09:07", dateutil.FormatJapaneseDateTime(ts))
}

func TestParseRoundTrip(t *testing.T) {
	d, err := dateutil.Parse("2024-02-29")
	require.NoError(t, err)
	require.Equal(t, "2024-02-29", dateutil.Format(d))

	_, err = dateutil.Parse("2024/02/29")
	require.Error(t, err)
}

func TestWeekRangeMondayStart(t *testing.T) {
	// Wednesday 2024-01-17 belongs to the week 2024-01-15 .. 2024-01-21.
	d := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)
	start, end := dateutil.WeekRange(d)
	require.Equal(t, "2024-01-15", dateutil.Format(start))
	require.Equal(t, "2024-01-21", dateutil.Format(end))

	// Sunday maps into the preceding Monday's week.
	d = time.Date(2024, 1, 21, 0, 0, 0, 0, time.UTC)
	start, end = dateutil.WeekRange(d)
	require.Equal(t, "2024-01-15", dateutil.Format(start))
	require.Equal(t, "2024-01-21", dateutil.Format(end))
}

func TestMonthRange(t *testing.T) {
	d := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	start, end := dateutil.MonthRange(d)
	require.Equal(t, "2024-02-01", dateutil.Format(start))
	require.Equal(t, "2024-02-29", dateutil.Format(end))
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	days := dateutil.DaysBetween(start, end)
	require.Len(t, days, 4)
	require.Equal(t, "2024-01-30", dateutil.Format(days[0]))
	require.Equal(t, "2024-02-02", dateutil.Format(days[3]))

	require.Empty(t, dateutil.DaysBetween(end, start))
}
