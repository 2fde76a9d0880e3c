package hours

import (
	"strconv"
	"strings"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// Breakdown is a delay split into days, hours, minutes and seconds.
type Breakdown struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// Decompose splits total seconds into the canonical breakdown.
// Negative totals are treated as zero (an elapsed countdown).
func Decompose(total int64) Breakdown {
	if total < 0 {
		total = 0
	}
	days := total / secondsPerDay
	total %= secondsPerDay
	hours := total / secondsPerHour
	total %= secondsPerHour
	return Breakdown{
		Days:    days,
		Hours:   hours,
		Minutes: total / secondsPerMinute,
		Seconds: total % secondsPerMinute,
	}
}

func Compose(days, hours, minutes, seconds int64) int64 {
	return days*secondsPerDay + hours*secondsPerHour + minutes*secondsPerMinute + seconds
}

func (b Breakdown) Total() int64 {
	return Compose(b.Days, b.Hours, b.Minutes, b.Seconds)
}

// String renders the breakdown with zero units omitted, "0s" when empty.
func (b Breakdown) String() string {
	parts := make([]string, 0, 4)
	for _, u := range []struct {
		v      int64
		suffix string
	}{
		{b.Days, "d"},
		{b.Hours, "h"},
		{b.Minutes, "m"},
		{b.Seconds, "s"},
	} {
		if u.v != 0 {
			parts = append(parts, strconv.FormatInt(u.v, 10)+u.suffix)
		}
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, " ")
}

// FormatCompact renders a delay like "1d 1h 1m 1s".
func FormatCompact(total int64) string {
	return Decompose(total).String()
}
