// Package repository owns the load-decide-append cycle for the account
// aggregate: it replays the event stream into state, asks the domain to decide,
// appends the resulting events with an expected-version check, and hands them
// to the bus.
package repository

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aitlahcen/comptes/pkg/domain/account"
	"github.com/aitlahcen/comptes/pkg/eventbus"
	"github.com/aitlahcen/comptes/pkg/eventstore"
	"github.com/google/uuid"
)

// Repository executes commands against the account aggregate.
//
// Writers are serialized per aggregate id: decide reads the balance before the
// append commits, so two concurrent debits on the same account could otherwise
// both pass the funds check against the same stale state. The expected-version
// check in the store still backstops writers in other processes.
type Repository struct {
	store  eventstore.Store
	bus    eventbus.Bus
	logger *slog.Logger

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// New returns a Repository over the given store and bus.
func New(store eventstore.Store, bus eventbus.Bus, logger *slog.Logger) *Repository {
	return &Repository{
		store:  store,
		bus:    bus,
		logger: logger,
		locks:  make(map[uuid.UUID]*sync.Mutex),
	}
}

func (r *Repository) lockFor(id uuid.UUID) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[id]
	if !ok {
		l = &sync.Mutex{}
		r.locks[id] = l
	}
	return l
}

// Execute runs one command through the aggregate and returns the appended
// events. Validation errors from the domain surface unchanged. A cancelled
// context aborts before anything is written; once the append has happened the
// events are facts and are always published.
func (r *Repository) Execute(ctx context.Context, cmd account.Command) ([]eventstore.StoredEvent, error) {
	id := cmd.AggregateID()
	lock := r.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	history, err := r.store.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	events, err := eventstore.DecodeAll(history)
	if err != nil {
		return nil, err
	}
	state := account.Replay(events)

	newEvents, err := account.Decide(state, cmd)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stored, err := r.store.Append(ctx, id, state.Version, newEvents)
	if err != nil {
		return nil, err
	}
	r.logger.Info("events appended",
		"aggregate_id", id,
		"count", len(stored),
		"stream_version", stored[len(stored)-1].Version,
	)

	// Projection failures do not fail the command; the appended events are the
	// source of truth and the read model can be rebuilt from them.
	if err := r.bus.Publish(ctx, stored); err != nil {
		r.logger.Error("publish after append failed", "aggregate_id", id, "error", err)
	}
	return stored, nil
}
