// Package readmodel holds the denormalized query-side view of accounts: one
// AccountView per account plus an append-only ledger of operations. Both are
// written exclusively by the projection engine.
package readmodel

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a view or ledger lookup misses.
var ErrNotFound = errors.New("account view not found")

// OperationType classifies a ledger entry.
type OperationType string

const (
	// OperationCredit marks funds added to an account.
	OperationCredit OperationType = "CREDIT"
	// OperationDebit marks funds removed from an account.
	OperationDebit OperationType = "DEBIT"
)

// AccountView mirrors the aggregate state for queries. LastVersion is the
// stream version of the last event folded in; the projector uses it to skip
// redeliveries and detect gaps.
type AccountView struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Balance     decimal.Decimal `gorm:"type:numeric(20,6)" json:"balance"`
	Currency    string          `gorm:"size:3" json:"currency"`
	Status      string          `gorm:"size:16" json:"status"`
	LastVersion int64           `json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OperationRecord is one immutable ledger row, created per credit or debit
// event. Version is the source event's stream version; the unique pair
// (AccountID, Version) keeps redelivered events from inserting duplicates.
type OperationRecord struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	AccountID uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_operations_account_version" json:"account_id"`
	Version   int64           `gorm:"uniqueIndex:idx_operations_account_version" json:"-"`
	Type      OperationType   `gorm:"size:8" json:"type"`
	Amount    decimal.Decimal `gorm:"type:numeric(20,6)" json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// Repository is the read model's storage contract.
type Repository interface {
	// SaveView inserts or updates an account view.
	SaveView(ctx context.Context, view *AccountView) error

	// GetView returns one view or ErrNotFound.
	GetView(ctx context.Context, id uuid.UUID) (*AccountView, error)

	// ListViews returns all account views.
	ListViews(ctx context.Context) ([]AccountView, error)

	// InsertOperation appends one ledger row.
	InsertOperation(ctx context.Context, op *OperationRecord) error

	// ListOperations returns the ledger for one account in event order.
	ListOperations(ctx context.Context, accountID uuid.UUID) ([]OperationRecord, error)
}
