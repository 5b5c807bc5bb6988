package eventstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aitlahcen/comptes/pkg/domain/account"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// eventRow is the gorm model backing the events table. The composite unique
// index on (aggregate_id, version) is what makes optimistic concurrency hold
// even across processes: two writers racing the same expected version cannot
// both commit.
type eventRow struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	AggregateID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_events_stream_version;index"`
	Version     int64     `gorm:"uniqueIndex:idx_events_stream_version"`
	EventType   string    `gorm:"size:64"`
	Payload     []byte
	CreatedAt   time.Time
}

func (eventRow) TableName() string { return "events" }

// GormStore is the database-backed Store. It expects the gorm session to be
// opened with TranslateError so unique-index violations surface as
// gorm.ErrDuplicatedKey.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore returns a Store backed by the given gorm session.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates the events table and its indexes.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&eventRow{})
}

// Append implements Store. The version check and the insert run in one
// transaction; the unique index backstops writers the in-transaction count
// cannot see.
func (s *GormStore) Append(ctx context.Context, aggregateID uuid.UUID, expectedVersion int64, events []account.Event) ([]StoredEvent, error) {
	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	rows := make([]eventRow, 0, len(events))
	for i, e := range events {
		eventType, payload, err := Encode(e)
		if err != nil {
			return nil, err
		}
		rows = append(rows, eventRow{
			AggregateID: aggregateID,
			Version:     expectedVersion + int64(i) + 1,
			EventType:   eventType,
			Payload:     payload,
			CreatedAt:   time.Now().UTC(),
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current int64
		if err := tx.Model(&eventRow{}).
			Where("aggregate_id = ?", aggregateID).
			Count(&current).Error; err != nil {
			return fmt.Errorf("count stream: %w", err)
		}
		if current != expectedVersion {
			return ErrVersionConflict
		}
		if err := tx.Create(&rows).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrVersionConflict
			}
			return fmt.Errorf("append events: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	stored := make([]StoredEvent, 0, len(rows))
	for _, row := range rows {
		stored = append(stored, StoredEvent{
			AggregateID: row.AggregateID,
			Version:     row.Version,
			Type:        row.EventType,
			Payload:     row.Payload,
			CreatedAt:   row.CreatedAt,
		})
	}
	return stored, nil
}

// Read implements Store.
func (s *GormStore) Read(ctx context.Context, aggregateID uuid.UUID) ([]StoredEvent, error) {
	var rows []eventRow
	if err := s.db.WithContext(ctx).
		Where("aggregate_id = ?", aggregateID).
		Order("version asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read stream: %w", err)
	}

	stored := make([]StoredEvent, 0, len(rows))
	for _, row := range rows {
		stored = append(stored, StoredEvent{
			AggregateID: row.AggregateID,
			Version:     row.Version,
			Type:        row.EventType,
			Payload:     row.Payload,
			CreatedAt:   row.CreatedAt,
		})
	}
	return stored, nil
}
