package account

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

//revive:disable

// CreateAccountRequest is the request body for opening a new account.
type CreateAccountRequest struct {
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Currency       string          `json:"currency" validate:"required,len=3,uppercase,alpha"`
}

// CreditAccountRequest is the request body for crediting an account.
type CreditAccountRequest struct {
	AccountID string          `json:"account_id" validate:"required,uuid4"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency" validate:"required,len=3,uppercase,alpha"`
}

// DebitAccountRequest is the request body for debiting an account.
type DebitAccountRequest struct {
	AccountID string          `json:"account_id" validate:"required,uuid4"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency" validate:"required,len=3,uppercase,alpha"`
}

// StoredEventDTO is the API representation of one persisted event, with the
// payload inlined as JSON rather than base64 bytes.
type StoredEventDTO struct {
	Version   int64           `json:"version"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}
