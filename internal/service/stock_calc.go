package service

import (
	"fmt"
	"time"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"
)

// StockStatus tags returned by CalculateStockStatus
const (
	StockStatusInStock       = "in_stock"
	StockStatusLowStock      = "low_stock"
	StockStatusReorderNeeded = "reorder_needed"
	StockStatusOutOfStock    = "out_of_stock"
)

// StockStatusInput carries the product fields the calculator reads.
type StockStatusInput struct {
	CurrentStock    int
	ReorderPoint    int
	ReorderQuantity int
	MOQ             int
	AvgDailySales   float64
}

// StockStatusResult is a fresh classification; nothing is persisted.
type StockStatusResult struct {
	Status            string     `json:"status"`
	SuggestedReorder  int        `json:"suggested_reorder"`
	EstimatedStockout *time.Time `json:"estimated_stockout,omitempty"`
}

// CalculateStockStatus classifies current stock against the reorder point.
// Pure threshold comparison, recomputed on every call:
//
//	stock == 0                  -> out_of_stock
//	stock <= reorderPoint       -> reorder_needed
//	stock <= 1.5 * reorderPoint -> low_stock
//	otherwise                   -> in_stock
//
// The suggested reorder quantity is floored at the product MOQ. A stockout
// estimate is only produced when average daily sales is known.
func CalculateStockStatus(in StockStatusInput, now time.Time) StockStatusResult {
	result := StockStatusResult{
		SuggestedReorder: in.ReorderQuantity,
	}
	if in.MOQ > result.SuggestedReorder {
		result.SuggestedReorder = in.MOQ
	}

	switch {
	case in.CurrentStock == 0:
		result.Status = StockStatusOutOfStock
	case in.CurrentStock <= in.ReorderPoint:
		result.Status = StockStatusReorderNeeded
	case float64(in.CurrentStock) <= 1.5*float64(in.ReorderPoint):
		result.Status = StockStatusLowStock
	default:
		result.Status = StockStatusInStock
	}

	if in.AvgDailySales > 0 && in.CurrentStock > 0 {
		days := int(float64(in.CurrentStock) / in.AvgDailySales)
		stockout := now.AddDate(0, 0, days)
		result.EstimatedStockout = &stockout
	}

	return result
}

// AdjustmentResult is the outcome of validating a manual stock adjustment.
// When Valid is false, NewStock is meaningless and callers must not apply it.
type AdjustmentResult struct {
	Valid    bool     `json:"valid"`
	NewStock int      `json:"new_stock"`
	Errors   []string `json:"errors,omitempty"`
}

// ValidateStockAdjustment checks a manual adjustment against current stock.
// A remove that would drive stock negative is invalid; the previous behavior
// of returning a clamped best-effort value alongside the error was a
// correctness hazard, so an invalid result carries no usable stock value.
func ValidateStockAdjustment(currentStock, quantity int, adjustmentType, reason string) AdjustmentResult {
	var errs []string

	if len(reason) < 5 {
		errs = append(errs, "reason must be at least 5 characters")
	}
	if quantity < 0 {
		errs = append(errs, "quantity must not be negative")
	}

	newStock := currentStock
	switch adjustmentType {
	case model.AdjustmentAdd:
		newStock = currentStock + quantity
	case model.AdjustmentRemove:
		if quantity > currentStock {
			errs = append(errs, fmt.Sprintf("cannot remove %d units: only %d in stock", quantity, currentStock))
		} else {
			newStock = currentStock - quantity
		}
	case model.AdjustmentSet:
		newStock = quantity
	default:
		errs = append(errs, "adjustment type must be add, remove, or set")
	}

	if len(errs) > 0 {
		return AdjustmentResult{Valid: false, Errors: errs}
	}
	return AdjustmentResult{Valid: true, NewStock: newStock}
}
