package controllers

import (
	"leadsdesk/internal/hours"
	"leadsdesk/internal/providers"
	"leadsdesk/internal/services"
	"net/http"
	"time"
)

type HealthController struct {
	service   services.SlotServiceInterface
	cache     providers.CacheProviderInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Slots         int     `json:"slots"`
	Subscribers   int     `json:"subscribers"`
	Revision      uint64  `json:"revision"`
	CacheEntries  int64   `json:"cache_entries"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Uptime:        hours.FormatCompact(int64(uptime / time.Second)),
		UptimeSeconds: uptime.Seconds(),
		Slots:         hc.service.Len(),
		Subscribers:   hc.service.Subscribers(),
		Revision:      hc.service.Revision(),
		CacheEntries:  hc.cache.Len(),
	})
}

func NewHealthController(service services.SlotServiceInterface, cache providers.CacheProviderInterface) *HealthController {
	return &HealthController{
		service:   service,
		cache:     cache,
		startTime: time.Now(),
	}
}
