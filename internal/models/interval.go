package models

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// InvalidHHMM marks a start/end value that could not be parsed. Windows
// carrying it never match.
const InvalidHHMM HHMM = -1

// HHMM is a wall-clock time encoded as hour*100 + minute, e.g. 13:30 is 1330.
// The upstream business API sends it as a four digit string ("0800"),
// dashboard clients may send plain integers; both decode.
type HHMM int

// ParseHHMM reads "0800", "800" or the colon form "08:00".
func ParseHHMM(s string) HHMM {
	s = strings.TrimSpace(s)
	if h, m, ok := strings.Cut(s, ":"); ok {
		if len(m) != 2 || h == "" {
			return InvalidHHMM
		}
		s = h + m
	}
	if s == "" {
		return InvalidHHMM
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return InvalidHHMM
	}
	return HHMM(v)
}

func (h HHMM) Valid() bool {
	return h >= 0
}

func (h HHMM) Hour() int   { return int(h) / 100 }
func (h HHMM) Minute() int { return int(h) % 100 }

// String renders the four digit upstream form.
func (h HHMM) String() string {
	if !h.Valid() {
		return ""
	}
	s := strconv.Itoa(int(h))
	if len(s) < 4 {
		s = strings.Repeat("0", 4-len(s)) + s
	}
	return s
}

func (h HHMM) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *HHMM) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*h = ParseHHMM(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil && n >= 0 {
		*h = HHMM(n)
		return nil
	}
	// Garbage schedule data must not fail the whole payload.
	*h = InvalidHHMM
	return nil
}

// WeeklyInterval is one open window on one weekday, Monday being day 0.
// Overnight windows close after midnight on the following day.
type WeeklyInterval struct {
	Day       int  `json:"day"`
	Start     HHMM `json:"start"`
	End       HHMM `json:"end"`
	Overnight bool `json:"is_overnight"`
}
