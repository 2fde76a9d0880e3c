// Package unread keeps track of which leads and events an operator already
// opened. Sets live in a durable key-value store shared by every dashboard
// client; writes from other clients arrive through a Notifier.
package unread

import (
	"bytes"
	"sort"
	"sync"

	json "github.com/goccy/go-json"
)

// Store is the durable key-value store holding JSON values per slot.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// Notifier delivers "slot changed" notifications from other clients.
type Notifier interface {
	Subscribe(key string, fn func()) Subscription
}

type Subscription interface {
	Unsubscribe()
}

type Set map[string]struct{}

func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members sorted.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Load reads the set stored under key. A missing or unparsable value yields
// an empty set. Numeric members are kept in their JSON text form; other
// non-string members are dropped.
func Load(store Store, key string) Set {
	raw, ok := store.Get(key)
	if !ok || len(raw) == 0 {
		return NewSet()
	}
	var members []json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return NewSet()
	}
	s := make(Set, len(members))
	for _, m := range members {
		if id, ok := memberID(m); ok {
			s[id] = struct{}{}
		}
	}
	return s
}

func memberID(m json.RawMessage) (string, bool) {
	m = bytes.TrimSpace(m)
	if len(m) == 0 {
		return "", false
	}
	switch c := m[0]; {
	case c == '"':
		var id string
		if err := json.Unmarshal(m, &id); err != nil {
			return "", false
		}
		return id, true
	case c == '-' || (c >= '0' && c <= '9'):
		return string(m), true
	}
	return "", false
}

// MarkViewed returns a copy of s containing id. When id was already present
// s itself is returned with changed=false and the caller can skip Persist.
func MarkViewed(s Set, id string) (Set, bool) {
	if s.Has(id) {
		return s, false
	}
	next := make(Set, len(s)+1)
	for k := range s {
		next[k] = struct{}{}
	}
	next[id] = struct{}{}
	return next, true
}

func Persist(store Store, key string, s Set) error {
	raw, err := json.Marshal(s.IDs())
	if err != nil {
		return err
	}
	store.Set(key, raw)
	return nil
}

func SubscribeExternalChange(n Notifier, key string, fn func()) Subscription {
	return n.Subscribe(key, fn)
}

// CountViewed counts how many of the loaded ids are in s.
func CountViewed(s Set, loaded []string) int {
	n := 0
	for _, id := range loaded {
		if s.Has(id) {
			n++
		}
	}
	return n
}

// UnreadCount is totalKnown minus the viewed ids present in the loaded page,
// floored at zero. Viewed ids outside the loaded page are not subtracted.
func UnreadCount(totalKnown, viewedPresent int) int {
	return max(0, totalKnown-viewedPresent)
}

// Tracker is the in-memory copy of one slot's set. The store stays the
// source of truth: the copy is refreshed from it after every mark and on
// every change notification.
type Tracker struct {
	mu    sync.RWMutex
	write sync.Mutex // held across load, mutate and persist
	store Store
	key   string
	set   Set
	sub   Subscription
}

func NewTracker(store Store, key string) *Tracker {
	return &Tracker{
		store: store,
		key:   key,
		set:   Load(store, key),
	}
}

func (t *Tracker) Has(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.set.Has(id)
}

func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.set)
}

func (t *Tracker) IDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.set.IDs()
}

// Snapshot returns the current set. Sets are replaced, never mutated, so the
// result stays stable.
func (t *Tracker) Snapshot() Set {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.set
}

// MarkViewed loads the slot, adds id and persists only when it changed.
func (t *Tracker) MarkViewed(id string) (bool, error) {
	return t.MarkViewedVia(t.store, id)
}

// MarkViewedVia is MarkViewed writing through store, a view of the tracker's
// store that may attribute the write to a client. Marks on one tracker are
// applied one at a time, so a slower write never lands after a newer one.
// The store may notify this tracker while it is written; only the write lock
// is held at that point.
func (t *Tracker) MarkViewedVia(store Store, id string) (bool, error) {
	t.write.Lock()
	defer t.write.Unlock()

	next, changed := MarkViewed(Load(store, t.key), id)
	if changed {
		if err := Persist(store, t.key, next); err != nil {
			return false, err
		}
	}
	t.Reload()
	return changed, nil
}

// Reload replaces the in-memory set with the stored one.
func (t *Tracker) Reload() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.set = Load(t.store, t.key)
}

// Watch follows changes written by other clients.
func (t *Tracker) Watch(n Notifier) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sub != nil {
		return
	}
	t.sub = SubscribeExternalChange(n, t.key, t.Reload)
}

func (t *Tracker) Close() {
	t.mu.Lock()
	sub := t.sub
	t.sub = nil
	t.mu.Unlock()
	if sub != nil {
		sub.Unsubscribe()
	}
}
