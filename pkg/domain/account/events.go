package account

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event type names as persisted in the event store.
const (
	EventTypeCreated   = "AccountCreated"
	EventTypeActivated = "AccountActivated"
	EventTypeCredited  = "AccountCredited"
	EventTypeDebited   = "AccountDebited"
)

// Event is the marker interface for account domain events. Events are immutable
// facts, ordered per aggregate id, never mutated or deleted once appended.
type Event interface {
	AggregateID() uuid.UUID
	Type() string
}

// AccountCreated records the opening of an account.
type AccountCreated struct {
	ID             uuid.UUID       `json:"id"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Currency       string          `json:"currency"`
	Status         Status          `json:"status"`
}

// AggregateID returns the account id the event belongs to.
func (e AccountCreated) AggregateID() uuid.UUID { return e.ID }

// Type returns the persisted event type name.
func (e AccountCreated) Type() string { return EventTypeCreated }

// AccountActivated records the activation of a freshly created account.
type AccountActivated struct {
	ID     uuid.UUID `json:"id"`
	Status Status    `json:"status"`
}

// AggregateID returns the account id the event belongs to.
func (e AccountActivated) AggregateID() uuid.UUID { return e.ID }

// Type returns the persisted event type name.
func (e AccountActivated) Type() string { return EventTypeActivated }

// AccountCredited records funds added to an account.
type AccountCredited struct {
	ID       uuid.UUID       `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// AggregateID returns the account id the event belongs to.
func (e AccountCredited) AggregateID() uuid.UUID { return e.ID }

// Type returns the persisted event type name.
func (e AccountCredited) Type() string { return EventTypeCredited }

// AccountDebited records funds removed from an account.
type AccountDebited struct {
	ID       uuid.UUID       `json:"id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// AggregateID returns the account id the event belongs to.
func (e AccountDebited) AggregateID() uuid.UUID { return e.ID }

// Type returns the persisted event type name.
func (e AccountDebited) Type() string { return EventTypeDebited }
