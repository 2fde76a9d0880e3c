package services

import (
	"leadsdesk/internal/models"
	"leadsdesk/internal/structures"
	"leadsdesk/internal/unread"
	"slices"
	"sort"
	"sync"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
)

type SlotServiceInterface interface {
	Get(key string) ([]byte, bool)
	Lookup(key string) ([]byte, bool, uint64)
	Set(key string, value []byte)
	SetAs(origin, key string, value []byte)
	DeleteAs(origin, key string) bool
	Allowed(key string) bool
	Keys() []string
	Len() int
	Subscribers() int
	Subscribe(key string, fn func()) unread.Subscription
	SubscribeAs(origin, key string, fn func()) unread.Subscription
	SubscribeAll(fn func(key string)) unread.Subscription
	Client(origin string) *ClientView
	GetSnapshot() *models.Storage
	PutSlots(slots map[string]json.RawMessage)
	Revision() uint64
}

// SlotService is the durable key-value store shared by dashboard clients.
// Values are JSON documents; last write wins.
type SlotService struct {
	mu       sync.RWMutex
	slots    map[string][]byte
	allowed  []string
	broker   *Broker
	revision atomic.Uint64
}

func NewSlotService(conf *structures.Config) SlotServiceInterface {
	return &SlotService{
		slots:   make(map[string][]byte),
		allowed: conf.Storage.Slots,
		broker:  NewBroker(),
	}
}

// Allowed reports whether key is one of the configured slots. An empty
// configuration accepts everything.
func (ss *SlotService) Allowed(key string) bool {
	if key == "" {
		return false
	}
	return len(ss.allowed) == 0 || slices.Contains(ss.allowed, key)
}

func (ss *SlotService) Get(key string) ([]byte, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	v, ok := ss.slots[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(v), true
}

// Lookup is Get plus the store revision the value belongs to, read atomically.
func (ss *SlotService) Lookup(key string) ([]byte, bool, uint64) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	rev := ss.revision.Load()
	v, ok := ss.slots[key]
	if !ok {
		return nil, false, rev
	}
	return slices.Clone(v), true, rev
}

func (ss *SlotService) Set(key string, value []byte) {
	ss.SetAs("", key, value)
}

// SetAs writes value and notifies every subscriber not registered under origin.
func (ss *SlotService) SetAs(origin, key string, value []byte) {
	ss.mu.Lock()
	ss.slots[key] = slices.Clone(value)
	ss.revision.Inc()
	ss.mu.Unlock()

	ss.broker.Publish(origin, key)
}

// DeleteAs removes key. Subscribers are notified only when a value existed.
func (ss *SlotService) DeleteAs(origin, key string) bool {
	ss.mu.Lock()
	_, ok := ss.slots[key]
	if ok {
		delete(ss.slots, key)
		ss.revision.Inc()
	}
	ss.mu.Unlock()

	if !ok {
		return false
	}
	ss.broker.Publish(origin, key)
	return true
}

func (ss *SlotService) Keys() []string {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	keys := make([]string, 0, len(ss.slots))
	for k := range ss.slots {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (ss *SlotService) Len() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.slots)
}

func (ss *SlotService) Subscribers() int {
	return ss.broker.Len()
}

func (ss *SlotService) Subscribe(key string, fn func()) unread.Subscription {
	return ss.SubscribeAs("", key, fn)
}

func (ss *SlotService) SubscribeAs(origin, key string, fn func()) unread.Subscription {
	return ss.broker.Subscribe(origin, key, func(string) { fn() })
}

func (ss *SlotService) SubscribeAll(fn func(key string)) unread.Subscription {
	return ss.broker.Subscribe("", "", fn)
}

func (ss *SlotService) Client(origin string) *ClientView {
	return &ClientView{origin: origin, service: ss}
}

func (ss *SlotService) GetSnapshot() *models.Storage {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	storage := &models.Storage{
		Version: models.StorageVersion,
		Slots:   make(map[string]json.RawMessage, len(ss.slots)),
	}
	for k, v := range ss.slots {
		storage.Slots[k] = slices.Clone(v)
	}
	return storage
}

// PutSlots replaces restored slots without notifying subscribers.
func (ss *SlotService) PutSlots(slots map[string]json.RawMessage) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	for k, v := range slots {
		ss.slots[k] = slices.Clone([]byte(v))
	}
}

// Revision increases on every write. Persistence uses it to skip clean saves
// and the response cache to tell current entries from stale ones.
func (ss *SlotService) Revision() uint64 {
	return ss.revision.Load()
}

// ClientView is the store as seen by one client: its own writes are not
// echoed back to its own subscriptions.
type ClientView struct {
	origin  string
	service *SlotService
}

func (cv *ClientView) Get(key string) ([]byte, bool) {
	return cv.service.Get(key)
}

func (cv *ClientView) Set(key string, value []byte) {
	cv.service.SetAs(cv.origin, key, value)
}

func (cv *ClientView) Subscribe(key string, fn func()) unread.Subscription {
	return cv.service.SubscribeAs(cv.origin, key, fn)
}
