// Package notify fans domain events out to admin-facing channels.
package notify

import (
	"context"
	"time"
)

// Event types
const (
	ReviewSubmitted = "review.submitted"
	ReviewApproved  = "review.approved"
	ReviewRejected  = "review.rejected"
	InquiryCreated  = "inquiry.created"
)

// Event is something an admin may want to hear about
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
	At   time.Time   `json:"at"`
}

// New stamps an event with the current time
func New(eventType string, data interface{}) Event {
	return Event{Type: eventType, Data: data, At: time.Now()}
}

// Notifier delivers events. Delivery is best effort: failures are logged by
// the implementation and never returned to the caller.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// Multi delivers each event to every notifier in order
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, event Event) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, event)
		}
	}
}

// Nop drops every event
type Nop struct{}

func (Nop) Notify(context.Context, Event) {}

// Func adapts a function to Notifier
type Func func(ctx context.Context, event Event)

func (f Func) Notify(ctx context.Context, event Event) { f(ctx, event) }
