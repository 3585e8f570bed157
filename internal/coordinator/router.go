// Package coordinator tracks per-session generation state and routes
// state-change notifications to exactly the display surfaces currently
// bound to each session.
package coordinator

import (
	"sync"

	"github.com/soyeahso/switchboard/internal/domain"
	"github.com/soyeahso/switchboard/internal/logging"
	"github.com/soyeahso/switchboard/internal/metrics"
)

// Coordinator is the single entry point for both the generation engine and
// the display surfaces. It is the only component permitted to mutate the
// state store, the view registry, and the view index.
//
// One mutex guards all three structures together: the rebind operation
// touches two session keys plus the registry, so anything finer-grained
// would reintroduce the ordering hazard this design removes. Mutation and
// interested-view resolution happen under the lock; subscriber fan-out runs
// after release, so a subscriber may rebind a view mid-notification without
// deadlocking. Per-key event ordering follows from the engine serializing
// its own callbacks per session, as the engine contract requires.
type Coordinator struct {
	mu      sync.Mutex
	store   *StateStore
	views   *ViewRegistry
	index   *ViewIndex
	bus     *Bus
	log     *logging.Logger
	metrics *metrics.Metrics
}

// Option configures the coordinator.
type Option func(*options)

type options struct {
	chunkMode ChunkMode
	metrics   *metrics.Metrics
}

// WithChunkMode selects how stream chunks are applied; default cumulative.
func WithChunkMode(mode ChunkMode) Option {
	return func(o *options) { o.chunkMode = mode }
}

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// New creates a coordinator with no sessions, views, or subscribers.
func New(log *logging.Logger, opts ...Option) *Coordinator {
	o := options{chunkMode: ChunkCumulative}
	for _, opt := range opts {
		opt(&o)
	}
	clog := log.Sub("coordinator")
	return &Coordinator{
		store:   NewStateStore(o.chunkMode),
		views:   NewViewRegistry(),
		index:   NewViewIndex(),
		bus:     NewBus(clog, o.metrics),
		log:     clog,
		metrics: o.metrics,
	}
}

// Engine-side operations. Each mutates under the lock, snapshots the
// resulting state and the interested views, then publishes.

// OnSendStart marks the session as sending. A stale error from a previous
// turn is cleared so the new turn starts clean.
func (c *Coordinator) OnSendStart(key domain.SessionKey) {
	c.mu.Lock()
	c.store.SetSending(key, true)
	st := c.store.ClearError(key)
	n := c.snapshotLocked(key, st)
	c.mu.Unlock()

	c.countEngineEvent("send_start")
	c.log.Debug().Str("key", key.String()).Msg("send started")
	c.publish(n)
}

// OnStreamChunk records an output chunk: streaming on, sending off, content
// replaced (or concatenated in delta mode).
func (c *Coordinator) OnStreamChunk(key domain.SessionKey, text string) {
	c.mu.Lock()
	st := c.store.AppendStreamingContent(key, text)
	n := c.snapshotLocked(key, st)
	c.mu.Unlock()

	c.countEngineEvent("chunk")
	c.publish(n)
}

// OnComplete returns the session to idle. Completion always wins over any
// stale sending/streaming flags.
func (c *Coordinator) OnComplete(key domain.SessionKey) {
	c.mu.Lock()
	st := c.store.Reset(key)
	n := c.snapshotLocked(key, st)
	c.mu.Unlock()

	c.countEngineEvent("complete")
	c.log.Debug().Str("key", key.String()).Msg("generation complete")
	c.publish(n)
}

// OnError records a generation error. The error is terminal for the
// in-flight turn but not for the session: the next send proceeds normally.
func (c *Coordinator) OnError(key domain.SessionKey, message string) {
	c.mu.Lock()
	st := c.store.SetError(key, message)
	n := c.snapshotLocked(key, st)
	c.mu.Unlock()

	c.countEngineEvent("error")
	c.log.Warn().Str("key", key.String()).Str("error", message).Msg("generation error")
	c.publish(n)
}

// View-side operations.

// RegisterView creates an unbound view; idempotent for an existing id.
func (c *Coordinator) RegisterView(viewID string) domain.ViewState {
	c.mu.Lock()
	v := c.views.Register(viewID)
	count := c.views.Count()
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.ViewsRegistered.Set(float64(count))
	}
	c.log.Debug().Str("viewId", viewID).Msg("view registered")
	return v
}

// UnregisterView removes the view and its index entry. Session state for
// the view's former key persists for other potential viewers.
func (c *Coordinator) UnregisterView(viewID string) {
	c.mu.Lock()
	if v, ok := c.views.Get(viewID); ok && v.Bound() {
		c.index.Remove(v.Key, viewID)
	}
	c.views.Unregister(viewID)
	count := c.views.Count()
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.ViewsRegistered.Set(float64(count))
	}
	c.log.Debug().Str("viewId", viewID).Msg("view unregistered")
}

// BindView points the view at a new session key. This is the only legal way
// to change a binding: the registry update and both index updates happen
// under one lock, so no event dispatched in between can observe a partial
// rebind. Binding an unregistered view is a no-op.
func (c *Coordinator) BindView(viewID string, key domain.SessionKey) {
	c.mu.Lock()
	v, ok := c.views.Get(viewID)
	if !ok {
		c.mu.Unlock()
		c.log.Debug().Str("viewId", viewID).Msg("bind for unregistered view dropped")
		return
	}
	oldKey := v.Key
	c.views.Bind(viewID, key)
	c.index.Rebind(viewID, oldKey, key)
	c.mu.Unlock()

	c.log.Debug().
		Str("viewId", viewID).
		Str("from", oldKey.String()).
		Str("to", key.String()).
		Msg("view rebound")
}

// GetState returns the session state, lazily creating an idle record.
func (c *Coordinator) GetState(key domain.SessionKey) domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Get(key)
}

// View returns the current binding record for a view.
func (c *Coordinator) View(viewID string) (domain.ViewState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.views.Get(viewID)
}

// ViewsFor returns the views currently bound to key.
func (c *Coordinator) ViewsFor(key domain.SessionKey) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index.ViewsFor(key)
}

// Subscribe registers a notification callback and returns its unsubscribe
// function.
func (c *Coordinator) Subscribe(fn Subscriber) func() {
	return c.bus.Subscribe(fn)
}

// ClearConversation drops all session states for the conversation, used
// when its sessions are bulk-deleted. Purged keys that still have bound
// views get one idle-state notification so surfaces drop stale affordances.
func (c *Coordinator) ClearConversation(conversationID int64) {
	c.mu.Lock()
	purged := c.store.ClearConversation(conversationID)
	var stale []domain.Notification
	for _, key := range purged {
		if ids := c.index.ViewsFor(key); len(ids) > 0 {
			stale = append(stale, domain.Notification{Key: key, ViewIDs: ids})
		}
	}
	c.mu.Unlock()

	c.log.Info().
		Int64("conversationId", conversationID).
		Int("purged", len(purged)).
		Msg("conversation state cleared")
	for _, n := range stale {
		c.publish(n)
	}
}

// Derived read-only queries, computed from the store over keys with bound
// views rather than kept as parallel state.

// IsStreaming reports whether the session is currently streaming.
func (c *Coordinator) IsStreaming(key domain.SessionKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Get(key).IsStreaming
}

// AnyStreaming reports whether any session with a bound view is streaming.
func (c *Coordinator) AnyStreaming() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range c.index.Keys() {
		if c.store.Get(key).IsStreaming {
			return true
		}
	}
	return false
}

// StreamingSessions returns the keys of sessions that are streaming and
// have at least one bound view.
func (c *Coordinator) StreamingSessions() []domain.SessionKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	var keys []domain.SessionKey
	for _, key := range c.index.Keys() {
		if c.store.Get(key).IsStreaming {
			keys = append(keys, key)
		}
	}
	return keys
}

// snapshotLocked builds the notification for key while the lock is held:
// interested views are resolved at this moment, not when the engine produced
// the event, so a view that already rebound away never sees the update.
func (c *Coordinator) snapshotLocked(key domain.SessionKey, st domain.SessionState) domain.Notification {
	return domain.Notification{
		Key:     key,
		State:   st,
		ViewIDs: c.index.ViewsFor(key),
	}
}

func (c *Coordinator) publish(n domain.Notification) {
	if c.metrics != nil {
		c.mu.Lock()
		streaming := c.store.StreamingCount()
		c.mu.Unlock()
		c.metrics.StreamingSessions.Set(float64(streaming))
	}
	c.bus.Publish(n)
}

func (c *Coordinator) countEngineEvent(kind string) {
	if c.metrics != nil {
		c.metrics.EngineEventsTotal.WithLabelValues(kind).Inc()
	}
}
