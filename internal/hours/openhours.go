package hours

import (
	"leadsdesk/internal/models"
	"sync"
	"time"
)

// Openness is the tri-state answer of the open-hours evaluator. Unknown means
// there was not enough data and must be rendered as its own state.
type Openness int8

const (
	Unknown Openness = iota - 1
	Closed
	Open
)

func (o Openness) String() string {
	switch o {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Bool returns nil for Unknown.
func (o Openness) Bool() *bool {
	if o == Unknown {
		return nil
	}
	v := o == Open
	return &v
}

var locations sync.Map

func loadLocation(name string) (*time.Location, bool) {
	if loc, ok := locations.Load(name); ok {
		return loc.(*time.Location), true
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, false
	}
	locations.Store(name, loc)
	return loc, true
}

// DayIndex returns the Monday=0 weekday of t.
func DayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Clock returns the local wall-clock time of t as HHMM.
func Clock(t time.Time) models.HHMM {
	return models.HHMM(t.Hour()*100 + t.Minute())
}

// IsOpenNow reports whether now falls inside one of the windows filed under
// the current local weekday in timeZone.
//
// Only the current day's windows are consulted: an overnight window filed
// under Friday is not seen on Saturday morning. IsOpenNowWithLookback covers
// that case.
func IsOpenNow(intervals []models.WeeklyInterval, timeZone string, now time.Time) Openness {
	local, ok := localize(intervals, timeZone, now)
	if !ok {
		return Unknown
	}
	if matchDay(intervals, DayIndex(local), Clock(local)) {
		return Open
	}
	return Closed
}

// IsOpenNowWithLookback behaves like IsOpenNow and additionally matches the
// after-midnight part of the previous day's overnight windows.
func IsOpenNowWithLookback(intervals []models.WeeklyInterval, timeZone string, now time.Time) Openness {
	local, ok := localize(intervals, timeZone, now)
	if !ok {
		return Unknown
	}
	day, current := DayIndex(local), Clock(local)
	if matchDay(intervals, day, current) {
		return Open
	}
	prev := (day + 6) % 7
	for _, o := range intervals {
		if o.Day != prev || !o.Overnight || !o.Start.Valid() || !o.End.Valid() {
			continue
		}
		if current < o.End {
			return Open
		}
	}
	return Closed
}

func localize(intervals []models.WeeklyInterval, timeZone string, now time.Time) (time.Time, bool) {
	if len(intervals) == 0 || timeZone == "" {
		return time.Time{}, false
	}
	loc, ok := loadLocation(timeZone)
	if !ok {
		return time.Time{}, false
	}
	return now.In(loc), true
}

func matchDay(intervals []models.WeeklyInterval, day int, current models.HHMM) bool {
	for _, o := range intervals {
		if o.Day != day || !o.Start.Valid() || !o.End.Valid() {
			continue
		}
		if !o.Overnight {
			if current >= o.Start && current < o.End {
				return true
			}
		} else if current >= o.Start || current < o.End {
			return true
		}
	}
	return false
}
