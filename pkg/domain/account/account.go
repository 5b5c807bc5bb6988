// Package account implements the event-sourced bank account aggregate.
//
// The aggregate is a pure state machine: Decide validates a command against the
// current state and returns the events to append, Apply folds one event into
// the state, and Replay rebuilds the state from an ordered event history.
// Nothing in this package touches storage; persistence belongs to the
// repository and the event store.
//
// Invariants:
//   - The balance is never negative (every debit is checked against it).
//   - The currency is fixed at creation and never changes.
//   - Status only moves forward: UNINITIALIZED -> CREATED -> ACTIVATED, and
//     only an ACTIVATED account accepts credits and debits.
package account

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an account.
type Status string

const (
	// StatusUninitialized is the zero state before any event has been applied.
	StatusUninitialized Status = "UNINITIALIZED"
	// StatusCreated is the state after AccountCreated.
	StatusCreated Status = "CREATED"
	// StatusActivated is the state after AccountActivated; the only state in
	// which credit and debit commands are accepted.
	StatusActivated Status = "ACTIVATED"
)

// Account is the aggregate's in-memory projection of its own event history.
// It is rebuilt by replay on every command and never persisted directly.
type Account struct {
	ID       uuid.UUID
	Balance  decimal.Decimal
	Currency string
	Status   Status
	// Version is the number of events applied so far. The repository uses it
	// as the expected stream version when appending.
	Version int64
}

// Zero returns the empty state a replay starts from.
func Zero() Account {
	return Account{Status: StatusUninitialized, Balance: decimal.Zero}
}

// Decide validates a command against the current state and returns the domain
// events it produces. It is pure with respect to the event log: the caller is
// responsible for appending the returned events.
func Decide(state Account, cmd Command) ([]Event, error) {
	switch c := cmd.(type) {
	case CreateAccount:
		return decideCreate(state, c)
	case CreditAccount:
		return decideCredit(state, c)
	case DebitAccount:
		return decideDebit(state, c)
	default:
		return nil, ErrAccountNotFound
	}
}

// decideCreate opens the account. Creation emits exactly two events, Created
// then Activated: every account is auto-activated and no separate activation
// command exists. The pair must stay together so the read model sees the same
// sequence the original system produced.
func decideCreate(state Account, cmd CreateAccount) ([]Event, error) {
	if state.Status != StatusUninitialized {
		return nil, ErrAccountAlreadyExists
	}
	if cmd.InitialBalance.IsNegative() {
		return nil, ErrInitialBalanceNegative
	}
	return []Event{
		AccountCreated{
			ID:             cmd.ID,
			InitialBalance: cmd.InitialBalance,
			Currency:       cmd.Currency,
			Status:         StatusCreated,
		},
		AccountActivated{
			ID:     cmd.ID,
			Status: StatusActivated,
		},
	}, nil
}

func decideCredit(state Account, cmd CreditAccount) ([]Event, error) {
	if state.Status == StatusUninitialized {
		return nil, ErrAccountNotFound
	}
	if state.Status != StatusActivated {
		return nil, ErrAccountNotActive
	}
	if cmd.Amount.IsNegative() {
		return nil, ErrAmountNegative
	}
	return []Event{
		AccountCredited{ID: cmd.ID, Amount: cmd.Amount, Currency: cmd.Currency},
	}, nil
}

func decideDebit(state Account, cmd DebitAccount) ([]Event, error) {
	if state.Status == StatusUninitialized {
		return nil, ErrAccountNotFound
	}
	if state.Status != StatusActivated {
		return nil, ErrAccountNotActive
	}
	if cmd.Amount.IsNegative() {
		return nil, ErrAmountNegative
	}
	if state.Balance.LessThan(cmd.Amount) {
		return nil, &InsufficientBalanceError{Balance: state.Balance}
	}
	return []Event{
		AccountDebited{ID: cmd.ID, Amount: cmd.Amount, Currency: cmd.Currency},
	}, nil
}

// Apply folds one event into the state. It is total and side-effect-free; an
// event kind it does not know leaves the state unchanged apart from the
// version bump.
func Apply(state Account, e Event) Account {
	switch ev := e.(type) {
	case AccountCreated:
		state.ID = ev.ID
		state.Balance = ev.InitialBalance
		state.Currency = ev.Currency
		state.Status = StatusCreated
	case AccountActivated:
		state.Status = ev.Status
	case AccountCredited:
		state.Balance = state.Balance.Add(ev.Amount)
	case AccountDebited:
		state.Balance = state.Balance.Sub(ev.Amount)
	}
	state.Version++
	return state
}

// Replay rebuilds the aggregate state by folding the event history through
// Apply, starting from the zero state. An empty history yields the zero state,
// which is valid only while handling a creation command.
func Replay(events []Event) Account {
	state := Zero()
	for _, e := range events {
		state = Apply(state, e)
	}
	return state
}
