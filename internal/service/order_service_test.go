package service

import (
	"context"
	"testing"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionOrder(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{model.OrderStatusPending, model.OrderStatusConfirmed, true},
		{model.OrderStatusPending, model.OrderStatusCancelled, true},
		{model.OrderStatusPending, model.OrderStatusShipped, false},
		{model.OrderStatusConfirmed, model.OrderStatusProcessing, true},
		{model.OrderStatusConfirmed, model.OrderStatusCancelled, true},
		{model.OrderStatusProcessing, model.OrderStatusShipped, true},
		{model.OrderStatusProcessing, model.OrderStatusCancelled, true},
		{model.OrderStatusShipped, model.OrderStatusDelivered, true},
		{model.OrderStatusShipped, model.OrderStatusCancelled, false},
		{model.OrderStatusDelivered, model.OrderStatusCancelled, false},
		{model.OrderStatusDelivered, model.OrderStatusPending, false},
		{model.OrderStatusCancelled, model.OrderStatusConfirmed, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransitionOrder(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransitionOrderNoBackwardMoves(t *testing.T) {
	statuses := []string{
		model.OrderStatusPending,
		model.OrderStatusConfirmed,
		model.OrderStatusProcessing,
		model.OrderStatusShipped,
		model.OrderStatusDelivered,
		model.OrderStatusCancelled,
	}

	// No status may transition to itself or to PENDING
	for _, s := range statuses {
		assert.False(t, CanTransitionOrder(s, s), "%s -> itself", s)
		assert.False(t, CanTransitionOrder(s, model.OrderStatusPending), "%s -> PENDING", s)
	}
}

func TestCheckoutRejectsDeactivatedProduct(t *testing.T) {
	userID := uuid.New()
	product := model.Product{
		ID:            uuid.New(),
		SKU:           "WH-TAPE-01",
		Name:          "Packing Tape Carton",
		Price:         decimal.RequireFromString("25"),
		CostPrice:     decimal.RequireFromString("10"),
		StockQuantity: 100,
		MOQ:           10,
		IsActive:      true,
	}
	productRepo := newFakeProductRepo(product)
	cartRepo := &fakeCartRepo{items: []model.CartItem{{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  20,
	}}}
	svc := NewOrderService(&fakeOrderRepo{}, productRepo, cartRepo,
		&fakeLedgerRepo{}, &fakeActivityRepo{}, fakeTxManager{}, nil)

	// Deactivated after carting: checkout must refuse the stale cart line
	product.IsActive = false
	productRepo.products[product.ID] = product

	_, err := svc.Checkout(context.Background(), userID.String(), CheckoutRequest{PaymentMethod: "BANK_TRANSFER"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	// Stock and cart untouched
	assert.Equal(t, 100, productRepo.products[product.ID].StockQuantity)
	assert.Len(t, cartRepo.items, 1)
}
