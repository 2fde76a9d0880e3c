package controllers

import (
	"leadsdesk/internal/services"
	"leadsdesk/internal/structures"
	"leadsdesk/internal/testutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-01 is a Monday.
var mondayNoon = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

func newHoursController() *HoursController {
	conf := &structures.Config{
		Hours: structures.HoursConfig{
			RefreshInterval: time.Second,
			Businesses: []structures.BusinessConfig{
				{
					ID:       "cafe",
					Name:     "Corner Cafe",
					TimeZone: "UTC",
					Open: []structures.IntervalConfig{
						{Day: 0, Start: "0800", End: "2000"},
						{Day: 4, Start: "2200", End: "0200", Overnight: true},
					},
				},
			},
		},
	}
	hc := NewHoursController(services.NewHoursMonitor(conf, &testutil.MockLogger{}, &testutil.MockMetrics{}))
	hc.now = func() time.Time { return mondayNoon }
	return hc
}

func TestIsOpen_States(t *testing.T) {
	hc := newHoursController()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"open", `{"open":[{"day":0,"start":"0800","end":"2000"}],"time_zone":"UTC"}`, `{"state":"open","open":true}`},
		{"closed", `{"open":[{"day":1,"start":"0800","end":"2000"}],"time_zone":"UTC"}`, `{"state":"closed","open":false}`},
		{"no hours", `{"open":[],"time_zone":"UTC"}`, `{"state":"unknown","open":null}`},
		{"unknown zone", `{"open":[{"day":0,"start":"0800","end":"2000"}],"time_zone":"Mars/Base"}`, `{"state":"unknown","open":null}`},
		{"missing zone", `{"open":[{"day":0,"start":"0800","end":"2000"}]}`, `{"state":"unknown","open":null}`},
		{"explicit now", `{"open":[{"day":0,"start":"0800","end":"2000"}],"time_zone":"UTC","now":"2024-01-01T21:00:00Z"}`, `{"state":"closed","open":false}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			hc.IsOpen(rr, httptest.NewRequest(http.MethodPost, "/hours/open", strings.NewReader(tt.body)))
			require.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, tt.want, rr.Body.String())
		})
	}
}

func TestIsOpen_MalformedBody(t *testing.T) {
	hc := newHoursController()

	rr := httptest.NewRecorder()
	hc.IsOpen(rr, httptest.NewRequest(http.MethodPost, "/hours/open", strings.NewReader(`[`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBusinessHours_RendersSchedule(t *testing.T) {
	hc := newHoursController()

	rr := httptest.NewRecorder()
	hc.BusinessHours(rr, httptest.NewRequest(http.MethodGet, "/hours?business=cafe", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"business_id": "cafe",
		"name": "Corner Cafe",
		"time_zone": "UTC",
		"lines": ["Mon: 08:00 - 20:00", "Fri: 22:00 - 02:00 (+1)"],
		"open_days": "Mon, Fri",
		"state": "open",
		"open": true
	}`, rr.Body.String())
}

func TestBusinessHours_UnknownBusiness(t *testing.T) {
	hc := newHoursController()

	rr := httptest.NewRecorder()
	hc.BusinessHours(rr, httptest.NewRequest(http.MethodGet, "/hours?business=nope", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDecompose(t *testing.T) {
	hc := newHoursController()

	tests := []struct {
		query string
		code  int
		want  string
	}{
		{"90061", http.StatusOK, `{"total":90061,"days":1,"hours":1,"minutes":1,"seconds":1,"compact":"1d 1h 1m 1s"}`},
		{"0", http.StatusOK, `{"total":0,"days":0,"hours":0,"minutes":0,"seconds":0,"compact":"0s"}`},
		{"-5", http.StatusOK, `{"total":0,"days":0,"hours":0,"minutes":0,"seconds":0,"compact":"0s"}`},
		{"abc", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rr := httptest.NewRecorder()
			hc.Decompose(rr, httptest.NewRequest(http.MethodGet, "/delay?seconds="+tt.query, nil))
			require.Equal(t, tt.code, rr.Code)
			if tt.want != "" {
				assert.JSONEq(t, tt.want, rr.Body.String())
			}
		})
	}
}

func TestCompose_Normalises(t *testing.T) {
	hc := newHoursController()

	rr := httptest.NewRecorder()
	hc.Compose(rr, httptest.NewRequest(http.MethodPost, "/delay", strings.NewReader(`{"days":0,"hours":25,"minutes":0,"seconds":30}`)))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"total":90030,"days":1,"hours":1,"minutes":0,"seconds":30,"compact":"1d 1h 30s"}`, rr.Body.String())
}
