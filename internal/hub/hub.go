// internal/hub/hub.go
package hub

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"smartwarehouse/internal/inventory"
)

// subscriberBuffer bounds how many undelivered updates a single observer may
// queue before further publishes to it are dropped.
const subscriberBuffer = 16

// Subscriber is one registered observer. Updates for it arrive in FIFO order
// on its channel.
type Subscriber struct {
	id      uuid.UUID
	updates chan inventory.ItemUpdate
	done    chan struct{}
	once    sync.Once
}

// ID returns the subscriber's handle, used for originator exclusion.
func (s *Subscriber) ID() uuid.UUID { return s.id }

// Updates is the subscriber's event stream.
func (s *Subscriber) Updates() <-chan inventory.ItemUpdate { return s.updates }

// Done is closed when the subscriber has been unsubscribed.
func (s *Subscriber) Done() <-chan struct{} { return s.done }

func (s *Subscriber) close() {
	s.once.Do(func() { close(s.done) })
}

// Hub fans inventory updates out to a dynamic set of subscribers. Subscribe
// and Unsubscribe are safe to call from arbitrary goroutines while a publish
// is in progress; a subscriber joining mid-publish may miss the in-flight
// event.
type Hub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]*Subscriber
}

// New creates an empty hub.
func New() *Hub {
	return &Hub{subs: make(map[uuid.UUID]*Subscriber)}
}

// Subscribe registers a new observer and returns its handle.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{
		id:      uuid.New(),
		updates: make(chan inventory.ItemUpdate, subscriberBuffer),
		done:    make(chan struct{}),
	}

	h.mu.Lock()
	h.subs[sub.id] = sub
	h.mu.Unlock()

	return sub
}

// Unsubscribe removes an observer. It is idempotent and safe to call while a
// publish is running.
func (h *Hub) Unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	sub, ok := h.subs[id]
	delete(h.subs, id)
	h.mu.Unlock()

	if ok {
		sub.close()
	}
}

// Publish delivers ev to every current subscriber except the excluded one
// (uuid.Nil excludes nobody). Delivery iterates a snapshot of the subscriber
// set, so no lock is held while sending. A departed or saturated subscriber
// is skipped; failure to deliver to one observer never blocks the others and
// never surfaces to the publisher.
func (h *Hub) Publish(ev inventory.ItemUpdate, exclude uuid.UUID) {
	h.mu.RLock()
	snapshot := make([]*Subscriber, 0, len(h.subs))
	for _, sub := range h.subs {
		snapshot = append(snapshot, sub)
	}
	h.mu.RUnlock()

	for _, sub := range snapshot {
		if sub.id == exclude {
			continue
		}
		select {
		case <-sub.done:
			// Unsubscribed between snapshot and delivery.
		case sub.updates <- ev:
		default:
			log.Printf("hub: dropping update for slow subscriber %s", sub.id)
		}
	}
}

// Len returns the current number of subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
