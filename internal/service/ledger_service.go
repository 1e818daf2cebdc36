package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateLedgerEntryRequest struct {
	SourceType  string  `json:"source_type" binding:"required,oneof=ORDER COST PAYROLL DISTRIBUTION MANUAL"`
	Direction   string  `json:"direction" binding:"required,oneof=CREDIT DEBIT"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	OrderID     string  `json:"order_id"`
	Description string  `json:"description"`
	EntryDate   string  `json:"entry_date"` // RFC3339 or YYYY-MM-DD, defaults to now
}

type LedgerFilter struct {
	SourceType string
	Direction  string
	StartDate  string
	EndDate    string
	Page       int
	Limit      int
}

// ReconciliationReport compares ledger ORDER totals against delivered order
// totals for a period. Differences within reconcileEpsilon count as matching.
type ReconciliationReport struct {
	StartDate         time.Time       `json:"start_date"`
	EndDate           time.Time       `json:"end_date"`
	LedgerRevenue     decimal.Decimal `json:"ledger_revenue"`
	LedgerCOGS        decimal.Decimal `json:"ledger_cogs"`
	OrderRevenue      decimal.Decimal `json:"order_revenue"`
	OrderCOGS         decimal.Decimal `json:"order_cogs"`
	RevenueDifference decimal.Decimal `json:"revenue_difference"`
	COGSDifference    decimal.Decimal `json:"cogs_difference"`
	RevenueMatch      bool            `json:"revenue_match"`
	COGSMatch         bool            `json:"cogs_match"`
	OverallMatch      bool            `json:"overall_match"`
}

// reconcileEpsilon is the rounding tolerance for ledger-vs-order comparison.
var reconcileEpsilon = decimal.NewFromFloat(0.01)

// CompareLedgerTotals builds the reconciliation report from the two pairs of
// sums. Pure arithmetic; no entry-to-order pairing is attempted.
func CompareLedgerTotals(start, end time.Time, ledger repository.LedgerTotals, orders repository.PeriodTotals) ReconciliationReport {
	revenueDiff := ledger.Credits.Sub(orders.Revenue)
	cogsDiff := ledger.Debits.Sub(orders.Cost)

	report := ReconciliationReport{
		StartDate:         start,
		EndDate:           end,
		LedgerRevenue:     ledger.Credits,
		LedgerCOGS:        ledger.Debits,
		OrderRevenue:      orders.Revenue,
		OrderCOGS:         orders.Cost,
		RevenueDifference: revenueDiff,
		COGSDifference:    cogsDiff,
		RevenueMatch:      revenueDiff.Abs().LessThanOrEqual(reconcileEpsilon),
		COGSMatch:         cogsDiff.Abs().LessThanOrEqual(reconcileEpsilon),
	}
	report.OverallMatch = report.RevenueMatch && report.COGSMatch
	return report
}

// --- Interface ---

type LedgerService interface {
	CreateEntry(ctx context.Context, userID string, req CreateLedgerEntryRequest) (*model.LedgerEntry, error)
	List(ctx context.Context, filter LedgerFilter) ([]model.LedgerEntry, int64, error)
	Compare(ctx context.Context, startDate, endDate string) (ReconciliationReport, error)
	MarkReconciled(ctx context.Context, userID string, entryIDs []string) (int64, error)
}

type ledgerService struct {
	ledgerRepo   repository.LedgerRepository
	orderRepo    repository.OrderRepository
	activityRepo repository.ActivityRepository
	txManager    repository.TransactionManager
}

func NewLedgerService(
	ledgerRepo repository.LedgerRepository,
	orderRepo repository.OrderRepository,
	activityRepo repository.ActivityRepository,
	txManager repository.TransactionManager,
) LedgerService {
	return &ledgerService{
		ledgerRepo:   ledgerRepo,
		orderRepo:    orderRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
	}
}

func (s *ledgerService) CreateEntry(ctx context.Context, userID string, req CreateLedgerEntryRequest) (*model.LedgerEntry, error) {
	entryDate := time.Now().UTC()
	if req.EntryDate != "" {
		parsed, err := parseDate(req.EntryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid entry_date", ErrValidation)
		}
		entryDate = parsed
	}

	var orderID *uuid.UUID
	if req.OrderID != "" {
		parsed, err := uuid.Parse(req.OrderID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid order_id", ErrValidation)
		}
		orderID = &parsed
	}

	entry := &model.LedgerEntry{
		SourceType:  req.SourceType,
		Direction:   req.Direction,
		Amount:      decimal.NewFromFloat(req.Amount),
		OrderID:     orderID,
		Description: req.Description,
		EntryDate:   entryDate,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.ledgerRepo.Create(txCtx, entry); createErr != nil {
			return fmt.Errorf("failed to create ledger entry: %w", createErr)
		}

		details, _ := json.Marshal(req)
		audit := &model.ActivityLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionCreateLedgerEntry,
			EntityID:   entry.ID.String(),
			EntityName: req.SourceType + "/" + req.Direction,
			Details:    string(details),
		}
		return s.activityRepo.Log(txCtx, audit)
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *ledgerService) List(ctx context.Context, filter LedgerFilter) ([]model.LedgerEntry, int64, error) {
	var start, end *time.Time
	if filter.StartDate != "" {
		parsed, err := parseDate(filter.StartDate)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid start_date", ErrValidation)
		}
		start = &parsed
	}
	if filter.EndDate != "" {
		parsed, err := parseDate(filter.EndDate)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid end_date", ErrValidation)
		}
		end = &parsed
	}
	return s.ledgerRepo.List(ctx, filter.Page, filter.Limit, filter.SourceType, filter.Direction, start, end)
}

// Compare runs the reconciliation comparison for a date range.
func (s *ledgerService) Compare(ctx context.Context, startDate, endDate string) (ReconciliationReport, error) {
	start, end, err := parsePeriod(startDate, endDate)
	if err != nil {
		return ReconciliationReport{}, err
	}

	ledgerTotals, err := s.ledgerRepo.OrderTotals(ctx, start, end)
	if err != nil {
		return ReconciliationReport{}, err
	}
	orderTotals, err := s.orderRepo.DeliveredTotals(ctx, start, end)
	if err != nil {
		return ReconciliationReport{}, err
	}

	return CompareLedgerTotals(start, end, ledgerTotals, orderTotals), nil
}

// MarkReconciled is a batch status update flagging the given entries as
// reconciled, stamped with the acting admin. Already-reconciled and unknown
// ids are skipped; the returned count tells the caller how many rows changed.
func (s *ledgerService) MarkReconciled(ctx context.Context, userID string, entryIDs []string) (int64, error) {
	if len(entryIDs) == 0 {
		return 0, fmt.Errorf("%w: entry_ids must not be empty", ErrValidation)
	}

	admin := parseUserID(userID)
	if admin == nil {
		return 0, fmt.Errorf("%w: acting user id is required", ErrValidation)
	}

	ids := make([]uuid.UUID, 0, len(entryIDs))
	for _, raw := range entryIDs {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid entry id %q", ErrValidation, raw)
		}
		ids = append(ids, parsed)
	}

	var marked int64
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		count, markErr := s.ledgerRepo.MarkReconciled(txCtx, ids, *admin, time.Now().UTC())
		if markErr != nil {
			return fmt.Errorf("failed to mark entries reconciled: %w", markErr)
		}
		marked = count

		details, _ := json.Marshal(map[string]interface{}{
			"requested": len(ids),
			"marked":    count,
		})
		audit := &model.ActivityLog{
			UserID:   admin,
			Action:   model.ActionReconcileLedger,
			EntityID: fmt.Sprintf("%d entries", len(ids)),
			Details:  string(details),
		}
		return s.activityRepo.Log(txCtx, audit)
	})
	if err != nil {
		return 0, err
	}

	return marked, nil
}
