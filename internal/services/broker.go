package services

import (
	"leadsdesk/internal/unread"
	"sync"

	"go.uber.org/atomic"
)

// Broker fans out slot change notifications. A subscription registered with
// an origin is not notified about writes made under the same origin, the
// way a browser tab never receives its own storage events.
type Broker struct {
	mu     sync.RWMutex
	nextID uint64
	byKey  map[string]map[uint64]*subscription
	all    map[uint64]*subscription
	count  atomic.Int64
}

type subscription struct {
	broker *Broker
	id     uint64
	key    string
	origin string
	fn     func(key string)
	done   atomic.Bool
}

// Unsubscribe stops all future callbacks. Calling it again is a no-op.
func (s *subscription) Unsubscribe() {
	if !s.done.CompareAndSwap(false, true) {
		return
	}
	s.broker.remove(s)
}

func NewBroker() *Broker {
	return &Broker{
		byKey: make(map[string]map[uint64]*subscription),
		all:   make(map[uint64]*subscription),
	}
}

// Subscribe registers fn for writes to key. An empty key subscribes to every slot.
func (b *Broker) Subscribe(origin, key string, fn func(key string)) unread.Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	s := &subscription{broker: b, id: b.nextID, key: key, origin: origin, fn: fn}
	if key == "" {
		b.all[s.id] = s
	} else {
		if b.byKey[key] == nil {
			b.byKey[key] = make(map[uint64]*subscription)
		}
		b.byKey[key][s.id] = s
	}
	b.count.Inc()
	return s
}

func (b *Broker) remove(s *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s.key == "" {
		delete(b.all, s.id)
	} else if subs, ok := b.byKey[s.key]; ok {
		delete(subs, s.id)
		if len(subs) == 0 {
			delete(b.byKey, s.key)
		}
	}
	b.count.Dec()
}

// Publish notifies subscribers of key, slot-wide ones first. Callbacks run
// on the caller's goroutine and must not block.
func (b *Broker) Publish(origin, key string) {
	b.mu.RLock()
	targets := make([]*subscription, 0, len(b.byKey[key])+len(b.all))
	for _, s := range b.all {
		targets = append(targets, s)
	}
	for _, s := range b.byKey[key] {
		targets = append(targets, s)
	}
	b.mu.RUnlock()

	for _, s := range targets {
		if s.done.Load() {
			continue
		}
		if origin != "" && s.origin == origin {
			continue
		}
		s.fn(key)
	}
}

func (b *Broker) Len() int {
	return int(b.count.Load())
}
