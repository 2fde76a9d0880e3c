package hours

import (
	"fmt"
	"leadsdesk/internal/models"
	"strings"
)

var dayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func DayName(day int) string {
	if day < 0 || day >= len(dayNames) {
		return "?"
	}
	return dayNames[day]
}

// FormatHHMM renders 800 as "08:00". Unparsable values render empty.
func FormatHHMM(h models.HHMM) string {
	s := h.String()
	if len(s) != 4 {
		return s
	}
	return s[:2] + ":" + s[2:]
}

// ScheduleLines renders one "Mon: 08:00 - 20:00" line per window, in input
// order, with overnight windows suffixed "(+1)".
func ScheduleLines(intervals []models.WeeklyInterval) []string {
	lines := make([]string, 0, len(intervals))
	for _, o := range intervals {
		line := fmt.Sprintf("%s: %s - %s", DayName(o.Day), FormatHHMM(o.Start), FormatHHMM(o.End))
		if o.Overnight {
			line += " (+1)"
		}
		lines = append(lines, line)
	}
	return lines
}

// OpenDays lists the distinct day names in order of first appearance.
func OpenDays(intervals []models.WeeklyInterval) string {
	seen := make(map[int]struct{}, 7)
	days := make([]string, 0, 7)
	for _, o := range intervals {
		if _, ok := seen[o.Day]; ok {
			continue
		}
		seen[o.Day] = struct{}{}
		days = append(days, DayName(o.Day))
	}
	return strings.Join(days, ", ")
}
