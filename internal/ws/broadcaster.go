package ws

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/alfurqan/prayertrack-backend/internal/metrics"
)

// Broadcaster serializes a change event once and delivers the identical
// payload to every subscriber live at the moment of publish. Delivery
// is fire-and-forget: a failed delivery unregisters that subscriber and
// nothing else.
type Broadcaster struct {
	registry *Registry
	log      zerolog.Logger
}

// NewBroadcaster creates a Broadcaster over the given registry.
func NewBroadcaster(registry *Registry, log zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		registry: registry,
		log:      log.With().Str("component", "broadcaster").Logger(),
	}
}

// Publish fans the event out to the current live set. Callers invoke it
// only after their transaction has durably committed.
func (b *Broadcaster) Publish(ev ChangeEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		b.log.Error().Err(err).Str("event", string(ev.Event)).Msg("Event marshal failed")
		return
	}

	for _, s := range b.registry.LiveSet() {
		if !s.enqueue(payload) {
			b.log.Debug().Str("event", string(ev.Event)).Msg("Subscriber unreachable, unregistering")
			b.registry.Unregister(s)
			continue
		}
		metrics.BroadcastDeliveries.Inc()
	}
}

// EntityUpdated publishes a created/updated event carrying the
// persisted entity.
func (b *Broadcaster) EntityUpdated(kind Kind, created bool, entity interface{}) {
	action := ActionUpdated
	if created {
		action = ActionCreated
	}
	b.Publish(ChangeEvent{
		Event:  EventEntityUpdated,
		Kind:   kind,
		Action: action,
		Entity: entity,
	})
}

// EntityDeleted publishes a deletion event carrying only the entity ID.
func (b *Broadcaster) EntityDeleted(kind Kind, id string) {
	b.Publish(ChangeEvent{
		Event: EventEntityDeleted,
		Kind:  kind,
		ID:    id,
	})
}
