package service

import "github.com/alfurqan/prayertrack-backend/internal/ws"

// ChangePublisher receives a typed change event after a mutation has
// durably committed. Implemented by ws.Broadcaster.
type ChangePublisher interface {
	EntityUpdated(kind ws.Kind, created bool, entity interface{})
	EntityDeleted(kind ws.Kind, id string)
}

func actionLabel(created bool) string {
	if created {
		return "created"
	}
	return "updated"
}
