// Package eventstore persists account events as an append-only, per-aggregate
// ordered stream. The stream is the source of truth; everything else in the
// system is derived from it.
package eventstore

import (
	"context"
	"errors"
	"time"

	"github.com/aitlahcen/comptes/pkg/domain/account"
	"github.com/google/uuid"
)

var (
	// ErrVersionConflict is returned when an append races another writer on the
	// same aggregate: the stream moved past the expected version. Callers should
	// reload the stream and retry the command.
	ErrVersionConflict = errors.New("event stream version conflict")

	// ErrNoEvents is returned when an append carries no events.
	ErrNoEvents = errors.New("no events to append")
)

// StoredEvent is the persisted envelope around a domain event. Version is the
// 1-based position of the event within its aggregate's stream and doubles as
// the idempotency key for projections.
type StoredEvent struct {
	AggregateID uuid.UUID
	Version     int64
	Type        string
	Payload     []byte
	CreatedAt   time.Time
}

// Event decodes the envelope back into its domain event.
func (s StoredEvent) Event() (account.Event, error) {
	return Decode(s)
}

// Store is the append/read contract of the event log.
type Store interface {
	// Append atomically appends events to the aggregate's stream. expectedVersion
	// is the number of events already in the stream; if the stream has moved,
	// Append fails with ErrVersionConflict and nothing is written.
	Append(ctx context.Context, aggregateID uuid.UUID, expectedVersion int64, events []account.Event) ([]StoredEvent, error)

	// Read returns the aggregate's full event history in version order. An
	// unknown aggregate yields an empty slice, not an error.
	Read(ctx context.Context, aggregateID uuid.UUID) ([]StoredEvent, error)
}

// DecodeAll decodes a stream of stored events into domain events, preserving order.
func DecodeAll(stored []StoredEvent) ([]account.Event, error) {
	events := make([]account.Event, 0, len(stored))
	for _, s := range stored {
		e, err := Decode(s)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
