package coordinator

import (
	"sync"

	"github.com/soyeahso/switchboard/internal/domain"
	"github.com/soyeahso/switchboard/internal/logging"
	"github.com/soyeahso/switchboard/internal/metrics"
)

// Subscriber receives a notification after every state mutation. The
// interested-view set inside the notification was resolved at publish time.
type Subscriber func(n domain.Notification)

// Bus fans state-change notifications out to subscribers, synchronously and
// in registration order. There is no buffering or coalescing: every publish
// reaches every subscriber exactly once.
type Bus struct {
	mu      sync.Mutex
	nextID  int64
	subs    []*subscription
	log     *logging.Logger
	metrics *metrics.Metrics
}

type subscription struct {
	id int64
	fn Subscriber
}

// NewBus creates a bus. m may be nil.
func NewBus(log *logging.Logger, m *metrics.Metrics) *Bus {
	return &Bus{
		log:     log.Sub("bus"),
		metrics: m,
	}
}

// Subscribe registers a callback and returns its unsubscribe function.
// Unsubscribing twice is harmless.
func (b *Bus) Subscribe(fn Subscriber) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &subscription{id: b.nextID, fn: fn}
	b.subs = append(b.subs, sub)

	id := sub.id
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers n to all subscribers in registration order. A panicking
// subscriber is logged and skipped; the rest still run. The subscriber list
// is snapshotted first, so a callback that subscribes or unsubscribes does
// not perturb the current fan-out.
func (b *Bus) Publish(n domain.Notification) {
	b.mu.Lock()
	subs := make([]*subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	if b.metrics != nil {
		b.metrics.NotificationsTotal.Inc()
	}

	for _, sub := range subs {
		b.deliver(sub, n)
	}
}

func (b *Bus) deliver(sub *subscription, n domain.Notification) {
	defer func() {
		if r := recover(); r != nil {
			if b.metrics != nil {
				b.metrics.SubscriberPanicsTotal.Inc()
			}
			b.log.Error().
				Interface("panic", r).
				Int64("subscriber", sub.id).
				Str("key", n.Key.String()).
				Msg("subscriber panicked during notification")
		}
	}()
	sub.fn(n)
}

// Count returns the number of active subscribers.
func (b *Bus) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
