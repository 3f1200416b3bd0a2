// Package queue defines message payloads exchanged over the message broker.
package queue

import "time"

// AccountEventsQueue is the durable queue carrying account lifecycle events.
const AccountEventsQueue = "account.events"

const (
	EventAccountRegistered = "account.registered"
	EventAccountApproved   = "account.approved"
)

// AccountEvent is published when an account is created or approved. It
// carries enough for consumers to audit or notify without reading the
// primary database. Credentials are never included.
type AccountEvent struct {
	Type       string    `json:"type"`
	AccountID  string    `json:"account_id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Approved   bool      `json:"approved"`
	ActorID    string    `json:"actor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
