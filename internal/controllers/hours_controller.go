package controllers

import (
	"leadsdesk/internal/hours"
	"leadsdesk/internal/models"
	"leadsdesk/internal/services"
	"net/http"
	"strconv"
	"time"
)

type HoursController struct {
	monitor services.HoursMonitorInterface
	now     func() time.Time
}

type openRequest struct {
	Open     []models.WeeklyInterval `json:"open"`
	TimeZone string                  `json:"time_zone"`
	Now      *time.Time              `json:"now"`
}

type openResponse struct {
	State string `json:"state"`
	Open  *bool  `json:"open"`
}

type businessHoursResponse struct {
	BusinessID string   `json:"business_id"`
	Name       string   `json:"name"`
	TimeZone   string   `json:"time_zone"`
	Lines      []string `json:"lines"`
	OpenDays   string   `json:"open_days"`
	State      string   `json:"state"`
	Open       *bool    `json:"open"`
}

type delayResponse struct {
	Total   int64  `json:"total"`
	Days    int64  `json:"days"`
	Hours   int64  `json:"hours"`
	Minutes int64  `json:"minutes"`
	Seconds int64  `json:"seconds"`
	Compact string `json:"compact"`
}

func NewHoursController(monitor services.HoursMonitorInterface) *HoursController {
	return &HoursController{monitor: monitor, now: time.Now}
}

// IsOpen evaluates an arbitrary weekly schedule. A missing or unknown zone
// yields the unknown state, never an error.
func (hc *HoursController) IsOpen(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if !decodeBody(w, r, &req) {
		return
	}
	now := hc.now()
	if req.Now != nil {
		now = *req.Now
	}
	state := hc.monitor.Evaluate(req.Open, req.TimeZone, now)
	writeJSON(w, http.StatusOK, openResponse{State: state.String(), Open: state.Bool()})
}

func (hc *HoursController) BusinessHours(w http.ResponseWriter, r *http.Request) {
	b, ok := hc.monitor.Business(r.URL.Query().Get("business"))
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	state := hc.monitor.Evaluate(b.Open, b.TimeZone, hc.now())
	writeJSON(w, http.StatusOK, businessHoursResponse{
		BusinessID: b.ID,
		Name:       b.Name,
		TimeZone:   b.TimeZone,
		Lines:      hours.ScheduleLines(b.Open),
		OpenDays:   hours.OpenDays(b.Open),
		State:      state.String(),
		Open:       state.Bool(),
	})
}

// Decompose splits ?seconds= into days, hours, minutes and seconds.
func (hc *HoursController) Decompose(w http.ResponseWriter, r *http.Request) {
	total, err := strconv.ParseInt(r.URL.Query().Get("seconds"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, newDelayResponse(hours.Decompose(total)))
}

// Compose folds a breakdown back into seconds and echoes it normalised.
func (hc *HoursController) Compose(w http.ResponseWriter, r *http.Request) {
	var b hours.Breakdown
	if !decodeBody(w, r, &b) {
		return
	}
	total := hours.Compose(b.Days, b.Hours, b.Minutes, b.Seconds)
	resp := newDelayResponse(hours.Decompose(total))
	resp.Total = total
	writeJSON(w, http.StatusOK, resp)
}

func newDelayResponse(b hours.Breakdown) delayResponse {
	return delayResponse{
		Total:   b.Total(),
		Days:    b.Days,
		Hours:   b.Hours,
		Minutes: b.Minutes,
		Seconds: b.Seconds,
		Compact: b.String(),
	}
}
