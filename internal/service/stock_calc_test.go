package service

import (
	"testing"
	"time"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateStockStatusThresholds(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		stock int
		want  string
	}{
		{"zero stock is out of stock", 0, StockStatusOutOfStock},
		{"at reorder point", 20, StockStatusReorderNeeded},
		{"below reorder point", 5, StockStatusReorderNeeded},
		{"within 1.5x reorder point", 30, StockStatusLowStock},
		{"just above 1.5x reorder point", 31, StockStatusInStock},
		{"well stocked", 100, StockStatusInStock},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := CalculateStockStatus(StockStatusInput{
				CurrentStock: tc.stock,
				ReorderPoint: 20,
			}, now)
			assert.Equal(t, tc.want, result.Status)
		})
	}
}

func TestCalculateStockStatusZeroReorderPoint(t *testing.T) {
	now := time.Now().UTC()

	// With no reorder point configured, any positive stock is in_stock
	result := CalculateStockStatus(StockStatusInput{CurrentStock: 1, ReorderPoint: 0}, now)
	assert.Equal(t, StockStatusInStock, result.Status)

	result = CalculateStockStatus(StockStatusInput{CurrentStock: 0, ReorderPoint: 0}, now)
	assert.Equal(t, StockStatusOutOfStock, result.Status)
}

func TestCalculateStockStatusSuggestedReorder(t *testing.T) {
	now := time.Now().UTC()

	// MOQ floors the suggestion
	result := CalculateStockStatus(StockStatusInput{
		CurrentStock:    5,
		ReorderPoint:    20,
		ReorderQuantity: 10,
		MOQ:             50,
	}, now)
	assert.Equal(t, 50, result.SuggestedReorder)

	result = CalculateStockStatus(StockStatusInput{
		CurrentStock:    5,
		ReorderPoint:    20,
		ReorderQuantity: 80,
		MOQ:             50,
	}, now)
	assert.Equal(t, 80, result.SuggestedReorder)
}

func TestCalculateStockStatusStockoutEstimate(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	result := CalculateStockStatus(StockStatusInput{
		CurrentStock:  50,
		ReorderPoint:  10,
		AvgDailySales: 5,
	}, now)
	require.NotNil(t, result.EstimatedStockout)
	assert.Equal(t, now.AddDate(0, 0, 10), *result.EstimatedStockout)

	// No sales velocity means no estimate
	result = CalculateStockStatus(StockStatusInput{CurrentStock: 50, ReorderPoint: 10}, now)
	assert.Nil(t, result.EstimatedStockout)

	// Out of stock products get no estimate either
	result = CalculateStockStatus(StockStatusInput{CurrentStock: 0, AvgDailySales: 5}, now)
	assert.Nil(t, result.EstimatedStockout)
}

func TestValidateStockAdjustmentAdd(t *testing.T) {
	result := ValidateStockAdjustment(100, 30, model.AdjustmentAdd, "restock delivery")
	require.True(t, result.Valid)
	assert.Equal(t, 130, result.NewStock)
	assert.Empty(t, result.Errors)
}

func TestValidateStockAdjustmentRemoveBeyondStock(t *testing.T) {
	result := ValidateStockAdjustment(100, 150, model.AdjustmentRemove, "damaged goods")
	require.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
	// An invalid result carries no usable stock value
	assert.Zero(t, result.NewStock)
}

func TestValidateStockAdjustmentSet(t *testing.T) {
	result := ValidateStockAdjustment(100, 42, model.AdjustmentSet, "annual count correction")
	require.True(t, result.Valid)
	assert.Equal(t, 42, result.NewStock)
}

func TestValidateStockAdjustmentRejectsBadInput(t *testing.T) {
	result := ValidateStockAdjustment(100, 10, model.AdjustmentRemove, "why")
	assert.False(t, result.Valid, "short reason must be rejected")

	result = ValidateStockAdjustment(100, -5, model.AdjustmentAdd, "negative quantity")
	assert.False(t, result.Valid)

	result = ValidateStockAdjustment(100, 10, "transfer", "unknown adjustment type")
	assert.False(t, result.Valid)
}
