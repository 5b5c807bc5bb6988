// Package account provides the application service the transport talks to. The
// command path forwards to the aggregate repository; the query path reads the
// denormalized views maintained by the projection engine.
package account

import (
	"context"
	"log/slog"

	"github.com/aitlahcen/comptes/pkg/domain/account"
	"github.com/aitlahcen/comptes/pkg/eventstore"
	"github.com/aitlahcen/comptes/pkg/readmodel"
	"github.com/aitlahcen/comptes/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service exposes account commands and queries.
type Service struct {
	repo   *repository.Repository
	views  readmodel.Repository
	store  eventstore.Store
	logger *slog.Logger
}

// New creates a Service with the provided dependencies.
func New(repo *repository.Repository, views readmodel.Repository, store eventstore.Store, logger *slog.Logger) *Service {
	return &Service{repo: repo, views: views, store: store, logger: logger}
}

// CreateAccount opens a new account and returns its freshly assigned id.
func (s *Service) CreateAccount(ctx context.Context, initialBalance decimal.Decimal, currency string) (uuid.UUID, error) {
	id := uuid.New()
	logger := s.logger.With("account_id", id, "currency", currency)
	logger.Info("creating account", "initial_balance", initialBalance)

	if _, err := s.repo.Execute(ctx, account.CreateAccount{
		ID:             id,
		InitialBalance: initialBalance,
		Currency:       currency,
	}); err != nil {
		logger.Error("create account failed", "error", err)
		return uuid.Nil, err
	}
	return id, nil
}

// Credit adds funds to an account.
func (s *Service) Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal, currency string) error {
	logger := s.logger.With("account_id", id, "amount", amount)
	logger.Info("crediting account")

	if _, err := s.repo.Execute(ctx, account.CreditAccount{
		ID:       id,
		Amount:   amount,
		Currency: currency,
	}); err != nil {
		logger.Error("credit failed", "error", err)
		return err
	}
	return nil
}

// Debit removes funds from an account, subject to the sufficient-funds rule.
func (s *Service) Debit(ctx context.Context, id uuid.UUID, amount decimal.Decimal, currency string) error {
	logger := s.logger.With("account_id", id, "amount", amount)
	logger.Info("debiting account")

	if _, err := s.repo.Execute(ctx, account.DebitAccount{
		ID:       id,
		Amount:   amount,
		Currency: currency,
	}); err != nil {
		logger.Error("debit failed", "error", err)
		return err
	}
	return nil
}

// GetAccount returns one account view or readmodel.ErrNotFound.
func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (*readmodel.AccountView, error) {
	return s.views.GetView(ctx, id)
}

// ListAccounts returns all account views.
func (s *Service) ListAccounts(ctx context.Context) ([]readmodel.AccountView, error) {
	return s.views.ListViews(ctx)
}

// ListOperations returns the operation ledger for one account. The account must
// exist in the read model.
func (s *Service) ListOperations(ctx context.Context, id uuid.UUID) ([]readmodel.OperationRecord, error) {
	if _, err := s.views.GetView(ctx, id); err != nil {
		return nil, err
	}
	return s.views.ListOperations(ctx, id)
}

// EventStream returns the raw stored events of one aggregate, for inspection.
// An account with no history yields account.ErrAccountNotFound.
func (s *Service) EventStream(ctx context.Context, id uuid.UUID) ([]eventstore.StoredEvent, error) {
	stored, err := s.store.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(stored) == 0 {
		return nil, account.ErrAccountNotFound
	}
	return stored, nil
}
