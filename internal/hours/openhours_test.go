package hours

import (
	"leadsdesk/internal/models"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-01 is a Monday.
func at(t *testing.T, zone string, day, hour, minute int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation(zone)
	require.NoError(t, err)
	return time.Date(2024, time.January, day, hour, minute, 0, 0, loc)
}

var wednesdayDaytime = []models.WeeklyInterval{
	{Day: 2, Start: 800, End: 2000},
}

var fridayNight = []models.WeeklyInterval{
	{Day: 4, Start: 2200, End: 600, Overnight: true},
}

func TestIsOpenNow_UnknownWithoutIntervals(t *testing.T) {
	assert.Equal(t, Unknown, IsOpenNow(nil, "UTC", time.Now()))
	assert.Equal(t, Unknown, IsOpenNow([]models.WeeklyInterval{}, "UTC", time.Now()))
}

func TestIsOpenNow_UnknownWithoutZone(t *testing.T) {
	assert.Equal(t, Unknown, IsOpenNow(wednesdayDaytime, "", time.Now()))
}

func TestIsOpenNow_UnknownForInvalidZone(t *testing.T) {
	assert.Equal(t, Unknown, IsOpenNow(wednesdayDaytime, "Mars/Olympus", time.Now()))
}

func TestIsOpenNow_DaytimeWindow(t *testing.T) {
	assert.Equal(t, Open, IsOpenNow(wednesdayDaytime, "UTC", at(t, "UTC", 3, 10, 30)))
	assert.Equal(t, Closed, IsOpenNow(wednesdayDaytime, "UTC", at(t, "UTC", 3, 21, 0)))
	assert.Equal(t, Closed, IsOpenNow(wednesdayDaytime, "UTC", at(t, "UTC", 4, 10, 30)))
}

func TestIsOpenNow_BoundariesHalfOpen(t *testing.T) {
	assert.Equal(t, Open, IsOpenNow(wednesdayDaytime, "UTC", at(t, "UTC", 3, 8, 0)))
	assert.Equal(t, Closed, IsOpenNow(wednesdayDaytime, "UTC", at(t, "UTC", 3, 7, 59)))
	assert.Equal(t, Closed, IsOpenNow(wednesdayDaytime, "UTC", at(t, "UTC", 3, 20, 0)))
}

func TestIsOpenNow_ConvertsToTargetZone(t *testing.T) {
	// 15:30 UTC is 10:30 in New York in January.
	now := at(t, "UTC", 3, 15, 30)
	assert.Equal(t, Open, IsOpenNow(wednesdayDaytime, "America/New_York", now))
	// 02:00 UTC Thursday is still Wednesday 21:00 in New York.
	now = at(t, "UTC", 4, 2, 0)
	assert.Equal(t, Closed, IsOpenNow(wednesdayDaytime, "America/New_York", now))
}

func TestIsOpenNow_OvernightSameDay(t *testing.T) {
	assert.Equal(t, Open, IsOpenNow(fridayNight, "UTC", at(t, "UTC", 5, 23, 0)))
	assert.Equal(t, Closed, IsOpenNow(fridayNight, "UTC", at(t, "UTC", 5, 12, 0)))
	// The before-end branch matches on the filing day itself.
	assert.Equal(t, Open, IsOpenNow(fridayNight, "UTC", at(t, "UTC", 5, 2, 0)))
}

func TestIsOpenNow_OvernightNotSeenNextDay(t *testing.T) {
	// Saturday 02:00 belongs to the Friday window but only Saturday's
	// records are consulted.
	assert.Equal(t, Closed, IsOpenNow(fridayNight, "UTC", at(t, "UTC", 6, 2, 0)))
}

func TestIsOpenNowWithLookback_OvernightSeenNextDay(t *testing.T) {
	assert.Equal(t, Open, IsOpenNowWithLookback(fridayNight, "UTC", at(t, "UTC", 6, 2, 0)))
	assert.Equal(t, Closed, IsOpenNowWithLookback(fridayNight, "UTC", at(t, "UTC", 6, 7, 0)))
	assert.Equal(t, Open, IsOpenNowWithLookback(fridayNight, "UTC", at(t, "UTC", 5, 23, 0)))
	assert.Equal(t, Unknown, IsOpenNowWithLookback(nil, "UTC", time.Now()))
}

func TestIsOpenNowWithLookback_SundayToMonday(t *testing.T) {
	sunday := []models.WeeklyInterval{{Day: 6, Start: 2000, End: 300, Overnight: true}}
	// 2024-01-08 is a Monday.
	assert.Equal(t, Open, IsOpenNowWithLookback(sunday, "UTC", at(t, "UTC", 8, 1, 0)))
}

func TestIsOpenNow_MalformedNeverMatches(t *testing.T) {
	intervals := []models.WeeklyInterval{
		{Day: 2, Start: 2000, End: 800},
		{Day: 2, Start: models.InvalidHHMM, End: 2300},
		{Day: 9, Start: 0, End: 2359},
	}
	assert.Equal(t, Closed, IsOpenNow(intervals, "UTC", at(t, "UTC", 3, 12, 0)))
}

func TestIsOpenNow_MultipleWindowsSameDay(t *testing.T) {
	intervals := []models.WeeklyInterval{
		{Day: 0, Start: 900, End: 1200},
		{Day: 0, Start: 1300, End: 1700},
	}
	assert.Equal(t, Open, IsOpenNow(intervals, "UTC", at(t, "UTC", 1, 14, 15)))
	assert.Equal(t, Closed, IsOpenNow(intervals, "UTC", at(t, "UTC", 1, 12, 30)))
}

func TestOpenness_Bool(t *testing.T) {
	assert.Nil(t, Unknown.Bool())
	require.NotNil(t, Open.Bool())
	assert.True(t, *Open.Bool())
	assert.False(t, *Closed.Bool())
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "open", Open.String())
	assert.Equal(t, "closed", Closed.String())
}

func TestDayIndex_MondayZero(t *testing.T) {
	assert.Equal(t, 0, DayIndex(at(t, "UTC", 1, 12, 0)))
	assert.Equal(t, 6, DayIndex(at(t, "UTC", 7, 12, 0)))
}

func TestClock_DecimalEncoding(t *testing.T) {
	assert.Equal(t, models.HHMM(1330), Clock(at(t, "UTC", 1, 13, 30)))
}

func TestIsOpenNow_ColonFormWindows(t *testing.T) {
	var intervals []models.WeeklyInterval
	require.NoError(t, json.Unmarshal([]byte(`[{"day":2,"start":"08:00","end":"20:00"}]`), &intervals))

	assert.Equal(t, Open, IsOpenNow(intervals, "UTC", at(t, "UTC", 3, 8, 0)))
	assert.Equal(t, Closed, IsOpenNow(intervals, "UTC", at(t, "UTC", 3, 20, 0)))
}
