package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CostRepository interface {
	Create(ctx context.Context, cost *model.OperationalCost) error
	Update(ctx context.Context, cost *model.OperationalCost) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.OperationalCost, error)
	List(ctx context.Context, page, limit int, category string, month, year int) ([]model.OperationalCost, int64, error)
	ApprovedTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
}

type costRepository struct {
	db *gorm.DB
}

func NewCostRepository(db *gorm.DB) CostRepository {
	return &costRepository{db: db}
}

func (r *costRepository) Create(ctx context.Context, cost *model.OperationalCost) error {
	return GetDB(ctx, r.db).Create(cost).Error
}

func (r *costRepository) Update(ctx context.Context, cost *model.OperationalCost) error {
	return GetDB(ctx, r.db).Save(cost).Error
}

func (r *costRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.OperationalCost, error) {
	var cost model.OperationalCost
	if err := GetDB(ctx, r.db).First(&cost, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cost, nil
}

func (r *costRepository) List(ctx context.Context, page, limit int, category string, month, year int) ([]model.OperationalCost, int64, error) {
	var costs []model.OperationalCost
	var total int64

	db := GetDB(ctx, r.db).Model(&model.OperationalCost{})
	if category != "" {
		db = db.Where("category = ?", category)
	}
	if month > 0 {
		db = db.Where("month = ?", month)
	}
	if year > 0 {
		db = db.Where("year = ?", year)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("cost_date desc").Offset(offset).Limit(limit).Find(&costs).Error; err != nil {
		return nil, 0, err
	}

	return costs, total, nil
}

// ApprovedTotal sums approved operational costs dated within [start, end].
// Only approved costs reduce net profit.
func (r *costRepository) ApprovedTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var row struct {
		Sum decimal.Decimal
	}
	err := GetDB(ctx, r.db).Model(&model.OperationalCost{}).
		Select("COALESCE(SUM(amount), 0) as sum").
		Where("is_approved = ? AND cost_date >= ? AND cost_date <= ?", true, start, end).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum operational costs: %w", err)
	}
	return row.Sum, nil
}
