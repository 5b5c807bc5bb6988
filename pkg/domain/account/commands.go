package account

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Command is the marker interface for account commands. Commands are transient
// inputs: they are validated against replayed state and never persisted.
type Command interface {
	AggregateID() uuid.UUID
}

// CreateAccount opens a new account with an opening balance and a currency.
// The currency is fixed for the lifetime of the account.
type CreateAccount struct {
	ID             uuid.UUID
	InitialBalance decimal.Decimal
	Currency       string
}

// AggregateID returns the id of the account the command targets.
func (c CreateAccount) AggregateID() uuid.UUID { return c.ID }

// CreditAccount adds funds to an existing account.
type CreditAccount struct {
	ID       uuid.UUID
	Amount   decimal.Decimal
	Currency string
}

// AggregateID returns the id of the account the command targets.
func (c CreditAccount) AggregateID() uuid.UUID { return c.ID }

// DebitAccount removes funds from an existing account, subject to the
// sufficient-funds invariant.
type DebitAccount struct {
	ID       uuid.UUID
	Amount   decimal.Decimal
	Currency string
}

// AggregateID returns the id of the account the command targets.
func (c DebitAccount) AggregateID() uuid.UUID { return c.ID }
