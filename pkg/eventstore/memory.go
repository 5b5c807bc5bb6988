package eventstore

import (
	"context"
	"sync"
	"time"

	"github.com/aitlahcen/comptes/pkg/domain/account"
	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used in tests and in development mode when
// no database is configured. It enforces the same expected-version contract as
// the database-backed store.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[uuid.UUID][]StoredEvent
}

// NewMemoryStore returns an empty in-memory event store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{streams: make(map[uuid.UUID][]StoredEvent)}
}

// Append implements Store.
func (m *MemoryStore) Append(ctx context.Context, aggregateID uuid.UUID, expectedVersion int64, events []account.Event) ([]StoredEvent, error) {
	if len(events) == 0 {
		return nil, ErrNoEvents
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stream := m.streams[aggregateID]
	if int64(len(stream)) != expectedVersion {
		return nil, ErrVersionConflict
	}

	appended := make([]StoredEvent, 0, len(events))
	for i, e := range events {
		eventType, payload, err := Encode(e)
		if err != nil {
			return nil, err
		}
		appended = append(appended, StoredEvent{
			AggregateID: aggregateID,
			Version:     expectedVersion + int64(i) + 1,
			Type:        eventType,
			Payload:     payload,
			CreatedAt:   time.Now().UTC(),
		})
	}
	m.streams[aggregateID] = append(stream, appended...)
	return appended, nil
}

// Read implements Store.
func (m *MemoryStore) Read(ctx context.Context, aggregateID uuid.UUID) ([]StoredEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	stream := m.streams[aggregateID]
	out := make([]StoredEvent, len(stream))
	copy(out, stream)
	return out, nil
}
