package datasync

import (
	"context"
	"encoding/json"
	"fmt"
)

// Transport delivers events between execution contexts attached to the same
// store. A Bus may carry several transports redundantly; a transport that
// fails to start or publish only costs cross-context convergence, never
// local delivery.
type Transport interface {
	// Publish sends an event to every other attached context.
	Publish(ctx context.Context, ev Event) error

	// Start begins receiving. Each received event is handed to deliver;
	// reception stops when ctx is canceled.
	Start(ctx context.Context, deliver func(Event)) error

	Close() error
}

// envelope is the on-wire shape shared by all transports. Brokers echo
// published messages back to the publisher's own subscription, so each
// transport instance stamps an origin ID and drops its own echoes; this
// keeps local delivery at exactly once per broadcast. The event payload
// itself is just type/action/timestamp.
type envelope struct {
	Origin string `json:"origin"`
	Event
}

func encodeEnvelope(origin string, ev Event) []byte {
	data, _ := json.Marshal(envelope{Origin: origin, Event: ev})
	return data
}

func decodeEnvelope(data []byte) (string, Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", Event{}, fmt.Errorf("malformed sync payload: %w", err)
	}
	if err := env.Event.Validate(); err != nil {
		return "", Event{}, err
	}
	return env.Origin, env.Event, nil
}
