package account

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrAmountNegative is returned when a credit or debit command carries a negative amount.
	ErrAmountNegative = errors.New("amount must not be negative")

	// ErrInitialBalanceNegative is returned when an account is created with a negative opening balance.
	ErrInitialBalanceNegative = errors.New("initial balance must not be negative")

	// ErrAccountNotFound is returned when a command references an account with no event history.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountAlreadyExists is returned when a creation command targets an existing event stream.
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrAccountNotActive is returned when a credit or debit targets an account that is not activated.
	ErrAccountNotActive = errors.New("account is not activated")
)

// InsufficientBalanceError is the business-rule rejection of a debit that exceeds
// the current balance. It carries the balance observed at decision time so callers
// can report it without replaying the stream again.
type InsufficientBalanceError struct {
	Balance decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("balance not sufficient: %s", e.Balance)
}
