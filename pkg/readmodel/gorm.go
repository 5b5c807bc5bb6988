package readmodel

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRepository is the database-backed read model.
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository returns a Repository backed by the given gorm session.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Migrate creates the read model tables and their indexes.
func (r *GormRepository) Migrate() error {
	return r.db.AutoMigrate(&AccountView{}, &OperationRecord{})
}

// SaveView implements Repository as an upsert keyed by the account id.
func (r *GormRepository) SaveView(ctx context.Context, view *AccountView) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(view).Error; err != nil {
		return fmt.Errorf("save account view: %w", err)
	}
	return nil
}

// GetView implements Repository.
func (r *GormRepository) GetView(ctx context.Context, id uuid.UUID) (*AccountView, error) {
	var view AccountView
	err := r.db.WithContext(ctx).First(&view, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account view: %w", err)
	}
	return &view, nil
}

// ListViews implements Repository.
func (r *GormRepository) ListViews(ctx context.Context) ([]AccountView, error) {
	var views []AccountView
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&views).Error; err != nil {
		return nil, fmt.Errorf("list account views: %w", err)
	}
	return views, nil
}

// InsertOperation implements Repository.
func (r *GormRepository) InsertOperation(ctx context.Context, op *OperationRecord) error {
	if err := r.db.WithContext(ctx).Create(op).Error; err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

// ListOperations implements Repository.
func (r *GormRepository) ListOperations(ctx context.Context, accountID uuid.UUID) ([]OperationRecord, error) {
	var ops []OperationRecord
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("version asc").
		Find(&ops).Error; err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	return ops, nil
}
