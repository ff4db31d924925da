package ws

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventConnected     Event = "connected"
	EventEntityUpdated Event = "entity_updated"
	EventEntityDeleted Event = "entity_deleted"
)

// Kind identifies which collection a change event refers to.
type Kind string

const (
	KindClass      Kind = "class"
	KindStudent    Kind = "student"
	KindAttendance Kind = "attendance"
)

// Action distinguishes a create from an in-place replace on upsert.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
)

// ChangeEvent is the wire form of one mutation, fanned out to every
// live subscriber after the mutation has durably committed.
type ChangeEvent struct {
	Event  Event       `json:"event"`
	Kind   Kind        `json:"kind"`
	Action Action      `json:"action,omitempty"`
	Entity interface{} `json:"entity,omitempty"`
	ID     string      `json:"id,omitempty"`
}

// ConnectedEvent is the one-time acknowledgment sent to a subscriber
// right after registration.
type ConnectedEvent struct {
	Event Event `json:"event"`
}
