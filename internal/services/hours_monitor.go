package services

import (
	"context"
	"leadsdesk/internal/hours"
	"leadsdesk/internal/models"
	"leadsdesk/internal/providers"
	"leadsdesk/internal/structures"
	"sync"
	"time"
)

type HoursMonitorInterface interface {
	Start(ctx context.Context)
	Tick(now time.Time)
	Evaluate(intervals []models.WeeklyInterval, timeZone string, now time.Time) hours.Openness
	Business(id string) (models.Business, bool)
	State(id string) hours.Openness
	Businesses() []models.Business
}

// HoursMonitor keeps the open state of configured businesses fresh.
type HoursMonitor struct {
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	interval   time.Duration
	lookback   bool
	businesses []models.Business

	mu     sync.RWMutex
	states map[string]hours.Openness
}

func NewHoursMonitor(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) HoursMonitorInterface {
	businesses := make([]models.Business, 0, len(conf.Hours.Businesses))
	for _, bc := range conf.Hours.Businesses {
		b := models.Business{ID: bc.ID, Name: bc.Name, TimeZone: bc.TimeZone}
		for _, ic := range bc.Open {
			b.Open = append(b.Open, models.WeeklyInterval{
				Day:       ic.Day,
				Start:     models.ParseHHMM(ic.Start),
				End:       models.ParseHHMM(ic.End),
				Overnight: ic.Overnight,
			})
		}
		businesses = append(businesses, b)
	}

	return &HoursMonitor{
		logger:     logger,
		metrics:    metrics,
		interval:   conf.Hours.RefreshInterval,
		lookback:   conf.Hours.OvernightLookback,
		businesses: businesses,
		states:     make(map[string]hours.Openness, len(businesses)),
	}
}

// Start re-evaluates every business until ctx is cancelled.
func (hm *HoursMonitor) Start(ctx context.Context) {
	if len(hm.businesses) == 0 {
		return
	}
	go hours.Every(ctx, hm.interval, hm.Tick)
}

func (hm *HoursMonitor) Tick(now time.Time) {
	for _, b := range hm.businesses {
		state := hm.Evaluate(b.Open, b.TimeZone, now)

		hm.mu.Lock()
		prev, seen := hm.states[b.ID]
		hm.states[b.ID] = state
		hm.mu.Unlock()

		hm.metrics.SetBusinessOpen(b.ID, int(state))
		if !seen || prev != state {
			hm.logger.Infof(providers.TypeApp, "Business %s is %s", b.ID, state)
		}
	}
}

func (hm *HoursMonitor) Evaluate(intervals []models.WeeklyInterval, timeZone string, now time.Time) hours.Openness {
	if hm.lookback {
		return hours.IsOpenNowWithLookback(intervals, timeZone, now)
	}
	return hours.IsOpenNow(intervals, timeZone, now)
}

func (hm *HoursMonitor) Business(id string) (models.Business, bool) {
	for _, b := range hm.businesses {
		if b.ID == id {
			return b, true
		}
	}
	return models.Business{}, false
}

// State returns the last evaluated state, Unknown before the first tick.
func (hm *HoursMonitor) State(id string) hours.Openness {
	hm.mu.RLock()
	defer hm.mu.RUnlock()
	if s, ok := hm.states[id]; ok {
		return s
	}
	return hours.Unknown
}

func (hm *HoursMonitor) Businesses() []models.Business {
	return hm.businesses
}
