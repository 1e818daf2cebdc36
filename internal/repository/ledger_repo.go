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

// LedgerTotals holds credit/debit sums for ORDER-sourced ledger entries.
type LedgerTotals struct {
	Credits decimal.Decimal
	Debits  decimal.Decimal
}

type LedgerRepository interface {
	Create(ctx context.Context, entry *model.LedgerEntry) error
	List(ctx context.Context, page, limit int, sourceType, direction string, start, end *time.Time) ([]model.LedgerEntry, int64, error)
	OrderTotals(ctx context.Context, start, end time.Time) (LedgerTotals, error)
	MarkReconciled(ctx context.Context, entryIDs []uuid.UUID, adminID uuid.UUID, at time.Time) (int64, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Create(ctx context.Context, entry *model.LedgerEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *ledgerRepository) List(ctx context.Context, page, limit int, sourceType, direction string, start, end *time.Time) ([]model.LedgerEntry, int64, error) {
	var entries []model.LedgerEntry
	var total int64

	db := GetDB(ctx, r.db).Model(&model.LedgerEntry{})
	if sourceType != "" {
		db = db.Where("source_type = ?", sourceType)
	}
	if direction != "" {
		db = db.Where("direction = ?", direction)
	}
	if start != nil {
		db = db.Where("entry_date >= ?", *start)
	}
	if end != nil {
		db = db.Where("entry_date <= ?", *end)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("entry_date desc").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

// OrderTotals sums CREDIT and DEBIT amounts over ORDER-sourced entries in
// [start, end]. The reconciler compares these against delivered order sums.
func (r *ledgerRepository) OrderTotals(ctx context.Context, start, end time.Time) (LedgerTotals, error) {
	var row struct {
		Credits decimal.Decimal
		Debits  decimal.Decimal
	}
	err := GetDB(ctx, r.db).Model(&model.LedgerEntry{}).
		Select(`COALESCE(SUM(CASE WHEN direction = ? THEN amount ELSE 0 END), 0) as credits,
			COALESCE(SUM(CASE WHEN direction = ? THEN amount ELSE 0 END), 0) as debits`,
			model.LedgerCredit, model.LedgerDebit).
		Where("source_type = ? AND entry_date >= ? AND entry_date <= ?", model.LedgerSourceOrder, start, end).
		Scan(&row).Error
	if err != nil {
		return LedgerTotals{}, fmt.Errorf("failed to sum ledger entries: %w", err)
	}
	return LedgerTotals{Credits: row.Credits, Debits: row.Debits}, nil
}

// MarkReconciled flags the given entries as reconciled and stamps the acting
// admin. Returns the number of rows updated so callers can report entries
// that were already reconciled or missing.
func (r *ledgerRepository) MarkReconciled(ctx context.Context, entryIDs []uuid.UUID, adminID uuid.UUID, at time.Time) (int64, error) {
	result := GetDB(ctx, r.db).Model(&model.LedgerEntry{}).
		Where("id IN ? AND is_reconciled = ?", entryIDs, false).
		Updates(map[string]interface{}{
			"is_reconciled": true,
			"reconciled_by": adminID,
			"reconciled_at": at,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
