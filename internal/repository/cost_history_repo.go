package repository

import (
	"context"

	"fabcost/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CostHistoryRepository is the data access contract for per-item cost
// history. ListByItem intentionally returns entries UNORDERED — the
// resolver scans for the effective entry itself, so callers must not
// assume any ordering.
type CostHistoryRepository interface {
	Create(ctx context.Context, e *model.CostHistoryEntry) error
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]model.CostHistoryEntry, error)
	ListByItemPaged(ctx context.Context, itemID uuid.UUID, page, limit int) ([]model.CostHistoryEntry, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type costHistoryRepo struct{ db *gorm.DB }

func NewCostHistoryRepository(db *gorm.DB) CostHistoryRepository {
	return &costHistoryRepo{db: db}
}

func (r *costHistoryRepo) Create(ctx context.Context, e *model.CostHistoryEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *costHistoryRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]model.CostHistoryEntry, error) {
	var entries []model.CostHistoryEntry
	err := r.db.WithContext(ctx).Where("item_id = ?", itemID).Find(&entries).Error
	return entries, err
}

// ListByItemPaged returns entries newest-first for history display.
func (r *costHistoryRepo) ListByItemPaged(
	ctx context.Context,
	itemID uuid.UUID,
	page, limit int,
) ([]model.CostHistoryEntry, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.CostHistoryEntry{}).
		Where("item_id = ?", itemID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.CostHistoryEntry
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("effective_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *costHistoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CostHistoryEntry{}, "id = ?", id).Error
}
