package repository

import (
	"context"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockAdjustmentRepository interface {
	Create(ctx context.Context, adjustment *model.StockAdjustment) error
	ListByProduct(ctx context.Context, productID uuid.UUID, page, limit int) ([]model.StockAdjustment, int64, error)
}

type stockAdjustmentRepository struct {
	db *gorm.DB
}

func NewStockAdjustmentRepository(db *gorm.DB) StockAdjustmentRepository {
	return &stockAdjustmentRepository{db: db}
}

func (r *stockAdjustmentRepository) Create(ctx context.Context, adjustment *model.StockAdjustment) error {
	return GetDB(ctx, r.db).Create(adjustment).Error
}

func (r *stockAdjustmentRepository) ListByProduct(ctx context.Context, productID uuid.UUID, page, limit int) ([]model.StockAdjustment, int64, error) {
	var adjustments []model.StockAdjustment
	var total int64

	db := GetDB(ctx, r.db).Model(&model.StockAdjustment{}).Where("product_id = ?", productID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&adjustments).Error; err != nil {
		return nil, 0, err
	}

	return adjustments, total, nil
}
