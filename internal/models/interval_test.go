package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHHMM(t *testing.T) {
	tests := []struct {
		in   string
		want HHMM
	}{
		{"0800", 800},
		{"2359", 2359},
		{"0000", 0},
		{" 930 ", 930},
		{"", InvalidHHMM},
		{"ab12", InvalidHHMM},
		{"-100", InvalidHHMM},
		{"08:00", 800},
		{"8:30", 830},
		{"23:59", 2359},
		{"8:3", InvalidHHMM},
		{":30", InvalidHHMM},
		{"08:00:00", InvalidHHMM},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseHHMM(tt.in))
		})
	}
}

func TestHHMM_String(t *testing.T) {
	assert.Equal(t, "0800", HHMM(800).String())
	assert.Equal(t, "0005", HHMM(5).String())
	assert.Equal(t, "1330", HHMM(1330).String())
	assert.Equal(t, "", InvalidHHMM.String())
	assert.Equal(t, 13, HHMM(1330).Hour())
	assert.Equal(t, 30, HHMM(1330).Minute())
}

func TestWeeklyInterval_DecodesMixedForms(t *testing.T) {
	var got []WeeklyInterval
	data := `[
		{"day":0,"start":"0800","end":"2000"},
		{"day":4,"start":2200,"end":200,"is_overnight":true},
		{"day":5,"start":{"bad":1},"end":"later"}
	]`
	require.NoError(t, json.Unmarshal([]byte(data), &got))
	require.Len(t, got, 3)

	assert.Equal(t, WeeklyInterval{Day: 0, Start: 800, End: 2000}, got[0])
	assert.Equal(t, WeeklyInterval{Day: 4, Start: 2200, End: 200, Overnight: true}, got[1])
	assert.False(t, got[2].Start.Valid())
	assert.False(t, got[2].End.Valid())
}

func TestWeeklyInterval_EncodesUpstreamForm(t *testing.T) {
	out, err := json.Marshal(WeeklyInterval{Day: 1, Start: 800, End: 1730})
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":1,"start":"0800","end":"1730","is_overnight":false}`, string(out))
}
