// Package ws tracks live-update subscribers and fans mutation events
// out to them. Membership is process-scoped: empty at startup, drained
// on shutdown, never persisted.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/alfurqan/prayertrack-backend/internal/metrics"
)

// Registry holds the currently-live subscriber set. It tolerates
// concurrent register/unregister/iteration; membership changes never
// block mutation transactions.
type Registry struct {
	mu   sync.Mutex
	subs map[*Subscriber]struct{}
	log  zerolog.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		subs: make(map[*Subscriber]struct{}),
		log:  log.With().Str("component", "registry").Logger(),
	}
}

// Register adds a subscriber and queues its one-time connected
// acknowledgment.
func (r *Registry) Register(s *Subscriber) {
	r.mu.Lock()
	r.subs[s] = struct{}{}
	n := len(r.subs)
	r.mu.Unlock()

	metrics.LiveSubscribers.Set(float64(n))
	r.log.Info().Int("subscribers", n).Msg("Subscriber connected")

	ack, _ := json.Marshal(ConnectedEvent{Event: EventConnected})
	s.enqueue(ack)
}

// Unregister removes a subscriber and closes its send channel. No-op
// when the subscriber is unknown or already removed.
func (r *Registry) Unregister(s *Subscriber) {
	r.mu.Lock()
	_, present := r.subs[s]
	if present {
		delete(r.subs, s)
	}
	n := len(r.subs)
	r.mu.Unlock()

	if !present {
		return
	}
	s.close()
	metrics.LiveSubscribers.Set(float64(n))
	r.log.Info().Int("subscribers", n).Msg("Subscriber disconnected")
}

// LiveSet returns the current membership as a slice, safe to iterate
// while registrations race.
func (r *Registry) LiveSet() []*Subscriber {
	r.mu.Lock()
	defer r.mu.Unlock()
	subs := make([]*Subscriber, 0, len(r.subs))
	for s := range r.subs {
		subs = append(subs, s)
	}
	return subs
}

// Len reports the current number of live subscribers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

// Close unregisters every subscriber, closing their connections. Called
// once on shutdown.
func (r *Registry) Close() {
	for _, s := range r.LiveSet() {
		r.Unregister(s)
	}
}
