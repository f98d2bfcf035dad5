// Package events publishes API connection transitions observed by the health poller.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Transition records the API switching between connected and disconnected.
type Transition struct {
	ID        string    `json:"id"`
	Connected bool      `json:"connected"`
	Service   string    `json:"service,omitempty"`
	At        time.Time `json:"at"`
	Detail    string    `json:"detail,omitempty"`
}

// NewTransition stamps a transition with a fresh id.
func NewTransition(connected bool, service, detail string, at time.Time) Transition {
	return Transition{
		ID:        uuid.NewString(),
		Connected: connected,
		Service:   service,
		At:        at.UTC(),
		Detail:    detail,
	}
}

// State renders the badge wording for the transition.
func (t Transition) State() string {
	if t.Connected {
		return "connected"
	}
	return "disconnected"
}

// Publisher delivers transitions to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, t Transition) error
	Close() error
}

// NoopPublisher discards transitions (default when no broker is configured).
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Transition) error { return nil }
func (NoopPublisher) Close() error                              { return nil }
