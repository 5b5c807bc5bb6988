package readmodel

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory read model for tests and development mode.
type MemoryRepository struct {
	mu    sync.RWMutex
	views map[uuid.UUID]AccountView
	ops   map[uuid.UUID][]OperationRecord
}

// NewMemoryRepository returns an empty in-memory read model.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		views: make(map[uuid.UUID]AccountView),
		ops:   make(map[uuid.UUID][]OperationRecord),
	}
}

// SaveView implements Repository.
func (r *MemoryRepository) SaveView(ctx context.Context, view *AccountView) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[view.ID] = *view
	return nil
}

// GetView implements Repository.
func (r *MemoryRepository) GetView(ctx context.Context, id uuid.UUID) (*AccountView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	view, ok := r.views[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &view, nil
}

// ListViews implements Repository.
func (r *MemoryRepository) ListViews(ctx context.Context) ([]AccountView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	views := make([]AccountView, 0, len(r.views))
	for _, v := range r.views {
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt.Before(views[j].CreatedAt)
	})
	return views, nil
}

// InsertOperation implements Repository.
func (r *MemoryRepository) InsertOperation(ctx context.Context, op *OperationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops[op.AccountID] = append(r.ops[op.AccountID], *op)
	return nil
}

// ListOperations implements Repository.
func (r *MemoryRepository) ListOperations(ctx context.Context, accountID uuid.UUID) ([]OperationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ops := make([]OperationRecord, len(r.ops[accountID]))
	copy(ops, r.ops[accountID])
	return ops, nil
}
