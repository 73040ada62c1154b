package datasync

import (
	"fmt"
	"time"
)

// EventType tags which collection a change touched. "inventory" has no
// persisted collection of its own; a stock change is always co-broadcast as
// inventory and products, and subscribers declare every tag they care about.
// The bus never merges or deduplicates overlapping tags.
type EventType string

const (
	TypeProducts   EventType = "products"
	TypeOrders     EventType = "orders"
	TypePromotions EventType = "promotions"
	TypeReviews    EventType = "reviews"
	TypeInventory  EventType = "inventory"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Event describes one change to shared data. It is fire-and-forget: created
// right after a successful save, delivered once to the subscribers active at
// that moment, never stored and never replayed to late subscribers.
type Event struct {
	Type      EventType `json:"type"`
	Action    Action    `json:"action"`
	Timestamp int64     `json:"timestamp"`
}

// NewEvent stamps an event with the current wall-clock time in milliseconds.
func NewEvent(t EventType, a Action) Event {
	return Event{Type: t, Action: a, Timestamp: time.Now().UnixMilli()}
}

var validTypes = map[EventType]bool{
	TypeProducts:   true,
	TypeOrders:     true,
	TypePromotions: true,
	TypeReviews:    true,
	TypeInventory:  true,
}

var validActions = map[Action]bool{
	ActionCreate: true,
	ActionUpdate: true,
	ActionDelete: true,
}

// Validate rejects events that do not match the wire contract. Transports
// drop invalid incoming payloads instead of delivering them.
func (e Event) Validate() error {
	if !validTypes[e.Type] {
		return fmt.Errorf("unknown event type %q", e.Type)
	}
	if !validActions[e.Action] {
		return fmt.Errorf("unknown event action %q", e.Action)
	}
	if e.Timestamp <= 0 {
		return fmt.Errorf("missing event timestamp")
	}
	return nil
}
