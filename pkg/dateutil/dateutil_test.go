package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayUTC_StripsTimeAndZone(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	in := time.Date(2026, 1, 10, 23, 45, 12, 999, loc)

	got := DayUTC(in)

	assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2026-01-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDay("10.01.2026")
	assert.Error(t, err)
}

func TestNightsBetween(t *testing.T) {
	checkIn := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC)

	nights, err := NightsBetween(checkIn, checkOut)
	require.NoError(t, err)
	assert.Equal(t, 3, nights)
}

func TestNightsBetween_InvalidRange(t *testing.T) {
	day := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	_, err := NightsBetween(day, day)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = NightsBetween(day, day.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestDatesInRange_ExcludesCheckout(t *testing.T) {
	checkIn := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC)

	dates := DatesInRange(checkIn, checkOut)

	require.Len(t, dates, 3)
	assert.Equal(t, "2026-01-10", DateKey(dates[0]))
	assert.Equal(t, "2026-01-11", DateKey(dates[1]))
	assert.Equal(t, "2026-01-12", DateKey(dates[2]))
}

func TestDatesInRange_EmptyForInvalidRange(t *testing.T) {
	day := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, DatesInRange(day, day))
	assert.Empty(t, DatesInRange(day, day.AddDate(0, 0, -2)))
}
