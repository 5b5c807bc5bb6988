// Package projection keeps the read model consistent with the event log. The
// projector consumes stored events at-least-once, in per-aggregate order, and
// folds them into AccountView rows and OperationRecord ledger entries.
package projection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aitlahcen/comptes/pkg/domain/account"
	"github.com/aitlahcen/comptes/pkg/eventbus"
	"github.com/aitlahcen/comptes/pkg/eventstore"
	"github.com/aitlahcen/comptes/pkg/readmodel"
	"github.com/shopspring/decimal"
)

// ErrOutOfOrder is returned when an event arrives for a missing view or with a
// version gap. The read model would diverge permanently if the event were
// skipped, so the projection fails loudly; recovery is a rebuild from the log.
var ErrOutOfOrder = errors.New("projection received event out of order")

// Projector updates the read model in response to account events.
//
// Idempotency contract: every event carries its stream version and the view
// records the last version folded in. Versions at or below LastVersion are
// redeliveries and are skipped; anything past LastVersion+1 is a gap.
type Projector struct {
	repo   readmodel.Repository
	logger *slog.Logger
}

// New returns a Projector writing to the given read model.
func New(repo readmodel.Repository, logger *slog.Logger) *Projector {
	return &Projector{repo: repo, logger: logger}
}

// Register subscribes the projector to every account event type on the bus.
func (p *Projector) Register(bus eventbus.Bus) {
	for _, eventType := range []string{
		account.EventTypeCreated,
		account.EventTypeActivated,
		account.EventTypeCredited,
		account.EventTypeDebited,
	} {
		bus.Subscribe(eventType, p.Handle)
	}
}

// Handle projects one stored event into the read model.
func (p *Projector) Handle(ctx context.Context, stored eventstore.StoredEvent) error {
	e, err := stored.Event()
	if err != nil {
		return err
	}

	logger := p.logger.With(
		"event_type", stored.Type,
		"aggregate_id", stored.AggregateID,
		"version", stored.Version,
	)
	logger.Debug("projecting event")

	if created, ok := e.(account.AccountCreated); ok {
		return p.applyCreated(ctx, stored, created)
	}

	view, err := p.repo.GetView(ctx, stored.AggregateID)
	if errors.Is(err, readmodel.ErrNotFound) {
		return fmt.Errorf("%w: %s for missing account %s", ErrOutOfOrder, stored.Type, stored.AggregateID)
	}
	if err != nil {
		return err
	}
	if stored.Version <= view.LastVersion {
		logger.Debug("skipping redelivered event", "last_version", view.LastVersion)
		return nil
	}
	if stored.Version != view.LastVersion+1 {
		return fmt.Errorf("%w: account %s at version %d received version %d",
			ErrOutOfOrder, stored.AggregateID, view.LastVersion, stored.Version)
	}

	switch ev := e.(type) {
	case account.AccountActivated:
		view.Status = string(ev.Status)
	case account.AccountCredited:
		if err := p.recordOperation(ctx, stored, readmodel.OperationCredit, ev.Amount); err != nil {
			return err
		}
		view.Balance = view.Balance.Add(ev.Amount)
	case account.AccountDebited:
		if err := p.recordOperation(ctx, stored, readmodel.OperationDebit, ev.Amount); err != nil {
			return err
		}
		view.Balance = view.Balance.Sub(ev.Amount)
	}

	view.LastVersion = stored.Version
	view.UpdatedAt = time.Now().UTC()
	return p.repo.SaveView(ctx, view)
}

func (p *Projector) applyCreated(ctx context.Context, stored eventstore.StoredEvent, e account.AccountCreated) error {
	existing, err := p.repo.GetView(ctx, stored.AggregateID)
	if err == nil && existing.LastVersion >= stored.Version {
		p.logger.Debug("skipping redelivered creation",
			"aggregate_id", stored.AggregateID, "last_version", existing.LastVersion)
		return nil
	}
	if err != nil && !errors.Is(err, readmodel.ErrNotFound) {
		return err
	}

	now := time.Now().UTC()
	return p.repo.SaveView(ctx, &readmodel.AccountView{
		ID:          e.ID,
		Balance:     e.InitialBalance,
		Currency:    e.Currency,
		Status:      string(e.Status),
		LastVersion: stored.Version,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (p *Projector) recordOperation(ctx context.Context, stored eventstore.StoredEvent, opType readmodel.OperationType, amount decimal.Decimal) error {
	return p.repo.InsertOperation(ctx, &readmodel.OperationRecord{
		AccountID: stored.AggregateID,
		Version:   stored.Version,
		Type:      opType,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	})
}
