package controllers

import (
	"fmt"
	"io"
	"leadsdesk/internal/providers"
	"leadsdesk/internal/services"
	"leadsdesk/internal/structures"
	"leadsdesk/internal/unread"
	"net/http"
	"strconv"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// ClientHeader identifies the dashboard tab issuing a write, so its own
// watch stream does not receive the change back.
const ClientHeader = "X-Client-ID"

const heartbeatInterval = 30 * time.Second

type ApiController struct {
	logger       providers.Logger
	service      services.SlotServiceInterface
	cache        providers.CacheProviderInterface
	maxValueSize int64

	trackersMu sync.Mutex
	trackers   map[string]*unread.Tracker
}

type slotResponse struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type viewedResponse struct {
	Key   string   `json:"key"`
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

type markViewedRequest struct {
	Key string `json:"key" validate:"required"`
	ID  string `json:"id" validate:"required"`
}

type markViewedResponse struct {
	Key     string `json:"key"`
	ID      string `json:"id"`
	Changed bool   `json:"changed"`
	Count   int    `json:"count"`
}

type unreadRequest struct {
	Key   string   `json:"key" validate:"required"`
	Total int      `json:"total" validate:"min:0"`
	IDs   []string `json:"ids"`
}

type unreadResponse struct {
	Key    string `json:"key"`
	Total  int    `json:"total"`
	Viewed int    `json:"viewed"`
	Unread int    `json:"unread"`
}

func NewApiController(logger providers.Logger, service services.SlotServiceInterface, cache providers.CacheProviderInterface, conf *structures.Config) *ApiController {
	ac := &ApiController{
		logger:       logger,
		service:      service,
		cache:        cache,
		maxValueSize: int64(conf.Storage.MaxValueSize),
		trackers:     make(map[string]*unread.Tracker),
	}
	if ac.maxValueSize <= 0 {
		ac.maxValueSize = maxRequestBodySize
	}
	return ac
}

// slotCacheKey names the cached response for key at store revision rev.
// Any write moves the revision on, so entries computed before it are never
// served again and simply expire.
func slotCacheKey(key string, rev uint64) string {
	return "slot:" + key + "@" + strconv.FormatUint(rev, 10)
}

// dropCached frees the entry of a revision a write just superseded; it can
// no longer be served.
func (ac *ApiController) dropCached(key string, rev uint64) {
	ac.cache.Del(slotCacheKey(key, rev))
}

// tracker returns the viewed-set tracker of key, following changes from
// every client.
func (ac *ApiController) tracker(key string) *unread.Tracker {
	ac.trackersMu.Lock()
	defer ac.trackersMu.Unlock()
	tr, ok := ac.trackers[key]
	if !ok {
		tr = unread.NewTracker(ac.service, key)
		tr.Watch(ac.service)
		ac.trackers[key] = tr
	}
	return tr
}

func (ac *ApiController) slotKey(w http.ResponseWriter, key string) (string, bool) {
	if !ac.service.Allowed(key) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return "", false
	}
	return key, true
}

// serveFromCacheOrCompute answers from the entry cached under cacheKey, or
// runs compute and caches its result under the key compute returns.
func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, string, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, storeKey, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(storeKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) GetSlot(w http.ResponseWriter, r *http.Request) {
	key, ok := ac.slotKey(w, r.URL.Query().Get("key"))
	if !ok {
		return
	}
	ac.serveFromCacheOrCompute(w, slotCacheKey(key, ac.service.Revision()), func() (any, string, error) {
		resp := slotResponse{Key: key, Value: json.RawMessage("null")}
		v, ok, rev := ac.service.Lookup(key)
		if ok {
			resp.Value = v
		}
		return resp, slotCacheKey(key, rev), nil
	})
}

func (ac *ApiController) PutSlot(w http.ResponseWriter, r *http.Request) {
	key, ok := ac.slotKey(w, r.URL.Query().Get("key"))
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, ac.maxValueSize)
	body, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(body) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	origin := r.Header.Get(ClientHeader)
	prev := ac.service.Revision()
	ac.service.SetAs(origin, key, body)
	ac.dropCached(key, prev)
	ac.logger.Debugf(providers.GetLogTypeByRequestType(r.Method), "Slot %s written by %q (%d bytes)", key, origin, len(body))
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	key, ok := ac.slotKey(w, r.URL.Query().Get("key"))
	if !ok {
		return
	}
	prev := ac.service.Revision()
	if !ac.service.DeleteAs(r.Header.Get(ClientHeader), key) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	ac.dropCached(key, prev)
	w.WriteHeader(http.StatusNoContent)
}

// WatchSlot streams a Server-Sent Event each time another client writes the
// slot. A stream opened without ?client= is assigned an id, announced in a
// "hello" event, which the tab then sends as X-Client-ID on its writes.
func (ac *ApiController) WatchSlot(w http.ResponseWriter, r *http.Request) {
	key, ok := ac.slotKey(w, r.URL.Query().Get("key"))
	if !ok {
		return
	}
	client := r.URL.Query().Get("client")
	if client == "" {
		client = uuid.NewString()
	}
	rc := http.NewResponseController(w)
	// the stream outlives the server write timeout
	_ = rc.SetWriteDeadline(time.Time{})

	changed := make(chan struct{}, 1)
	sub := ac.service.SubscribeAs(client, key, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer sub.Unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, ": watching %s\n\nevent: hello\ndata: %s\n\n", key, client)
	if err := rc.Flush(); err != nil {
		ac.logger.Warnf(providers.TypeGet, "Watch on %s cannot flush: %s", key, err)
		return
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-changed:
			_, err := fmt.Fprintf(w, "event: change\ndata: %s\n\n", key)
			if err != nil {
				return
			}
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func (ac *ApiController) GetViewed(w http.ResponseWriter, r *http.Request) {
	key, ok := ac.slotKey(w, r.URL.Query().Get("key"))
	if !ok {
		return
	}
	ids := ac.tracker(key).IDs()
	writeJSON(w, http.StatusOK, viewedResponse{Key: key, IDs: ids, Count: len(ids)})
}

func (ac *ApiController) MarkViewed(w http.ResponseWriter, r *http.Request) {
	var req markViewedRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if _, ok := ac.slotKey(w, req.Key); !ok {
		return
	}

	tr := ac.tracker(req.Key)
	changed, err := tr.MarkViewedVia(ac.service.Client(r.Header.Get(ClientHeader)), req.ID)
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "Persist %s failed: %s", req.Key, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, markViewedResponse{Key: req.Key, ID: req.ID, Changed: changed, Count: tr.Len()})
}

// Unread counts the loaded ids that were not viewed yet, out of the known total.
func (ac *ApiController) Unread(w http.ResponseWriter, r *http.Request) {
	var req unreadRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if _, ok := ac.slotKey(w, req.Key); !ok {
		return
	}

	viewed := unread.CountViewed(ac.tracker(req.Key).Snapshot(), req.IDs)
	writeJSON(w, http.StatusOK, unreadResponse{
		Key:    req.Key,
		Total:  req.Total,
		Viewed: viewed,
		Unread: unread.UnreadCount(req.Total, viewed),
	})
}
