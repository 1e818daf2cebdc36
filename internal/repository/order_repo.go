package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PeriodTotals holds aggregate revenue and cost sums over a date range.
type PeriodTotals struct {
	Revenue    decimal.Decimal
	Cost       decimal.Decimal
	OrderCount int64
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	CreateItem(ctx context.Context, item *model.OrderItem) error
	Update(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, page, limit int, userID *uuid.UUID, status string) ([]model.Order, int64, error)
	DeliveredTotals(ctx context.Context, start, end time.Time) (PeriodTotals, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return GetDB(ctx, r.db).Create(order).Error
}

func (r *orderRepository) CreateItem(ctx context.Context, item *model.OrderItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	return GetDB(ctx, r.db).Save(order).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := GetDB(ctx, r.db).Preload("Items").Preload("User").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := GetDB(ctx, r.db).Where("order_id = ?", id).Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, page, limit int, userID *uuid.UUID, status string) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Order{})
	if userID != nil {
		db = db.Where("user_id = ?", *userID)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Items").Order("created_at desc").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// DeliveredTotals sums order totals and COGS over DELIVERED orders created in
// [start, end]. Feeds the profit calculator and the ledger reconciler.
func (r *orderRepository) DeliveredTotals(ctx context.Context, start, end time.Time) (PeriodTotals, error) {
	var row struct {
		Revenue decimal.Decimal
		Cost    decimal.Decimal
		Count   int64
	}
	err := GetDB(ctx, r.db).Model(&model.Order{}).
		Select("COALESCE(SUM(total), 0) as revenue, COALESCE(SUM(total_cost), 0) as cost, COUNT(*) as count").
		Where("status = ? AND created_at >= ? AND created_at <= ?", model.OrderStatusDelivered, start, end).
		Scan(&row).Error
	if err != nil {
		return PeriodTotals{}, fmt.Errorf("failed to sum delivered orders: %w", err)
	}
	return PeriodTotals{Revenue: row.Revenue, Cost: row.Cost, OrderCount: row.Count}, nil
}
