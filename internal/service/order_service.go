package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/repository"
	ws "github.com/raihanuddin561/skyzonebd-sub004/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
	ShippingNote  string `json:"shipping_note"`
}

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=CONFIRMED PROCESSING SHIPPED DELIVERED CANCELLED"`
}

// CanTransitionOrder encodes the forward-only order lifecycle. CANCELLED is
// reachable until the order ships; DELIVERED and CANCELLED are terminal.
func CanTransitionOrder(from, to string) bool {
	switch from {
	case model.OrderStatusPending:
		return to == model.OrderStatusConfirmed || to == model.OrderStatusCancelled
	case model.OrderStatusConfirmed:
		return to == model.OrderStatusProcessing || to == model.OrderStatusCancelled
	case model.OrderStatusProcessing:
		return to == model.OrderStatusShipped || to == model.OrderStatusCancelled
	case model.OrderStatusShipped:
		return to == model.OrderStatusDelivered
	default:
		return false
	}
}

// --- Interface ---

type OrderService interface {
	Checkout(ctx context.Context, userID string, req CheckoutRequest) (*model.Order, error)
	UpdateStatus(ctx context.Context, id, userID string, req OrderStatusRequest) (*model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context, page, limit int, userID, status string) ([]model.Order, int64, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	cartRepo     repository.CartRepository
	ledgerRepo   repository.LedgerRepository
	activityRepo repository.ActivityRepository
	txManager    repository.TransactionManager
	hub          *ws.Hub
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	ledgerRepo repository.LedgerRepository,
	activityRepo repository.ActivityRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		cartRepo:     cartRepo,
		ledgerRepo:   ledgerRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

// Checkout converts the user's cart into an order. Product rows are locked
// for the duration of the transaction; stock decrements, order rows, price
// snapshots and the cart clear all commit or roll back together.
func (s *orderService) Checkout(ctx context.Context, userID string, req CheckoutRequest) (*model.Order, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	var created *model.Order
	var alerts []ws.StockAlert

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		items, cartErr := s.cartRepo.ListByUser(txCtx, uid)
		if cartErr != nil {
			return cartErr
		}
		if len(items) == 0 {
			return fmt.Errorf("%w: cart is empty", ErrValidation)
		}

		order := model.Order{
			OrderNumber:   generateOrderNumber(),
			UserID:        uid,
			Status:        model.OrderStatusPending,
			Total:         decimal.Zero,
			TotalCost:     decimal.Zero,
			PaymentStatus: model.PaymentStatusUnpaid,
			PaymentMethod: req.PaymentMethod,
			ShippingNote:  req.ShippingNote,
		}
		if createErr := s.orderRepo.Create(txCtx, &order); createErr != nil {
			return fmt.Errorf("failed to create order: %w", createErr)
		}

		var productNames []string
		now := time.Now().UTC()
		for _, item := range items {
			product, findErr := s.productRepo.FindByIDForUpdate(txCtx, item.ProductID)
			if findErr != nil {
				if errors.Is(findErr, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %s no longer available", ErrNotFound, item.ProductID)
				}
				return findErr
			}

			if !product.IsActive {
				return fmt.Errorf("%w: %s is no longer available", ErrValidation, product.Name)
			}
			if item.Quantity < product.MOQ {
				return fmt.Errorf("%w: %s requires a minimum of %d units", ErrValidation, product.Name, product.MOQ)
			}
			if item.Quantity > product.StockQuantity {
				return fmt.Errorf("%w: insufficient stock for %s (%d available)", ErrConflict, product.Name, product.StockQuantity)
			}

			newStock := product.StockQuantity - item.Quantity
			if stockErr := s.productRepo.UpdateStock(txCtx, product.ID, newStock); stockErr != nil {
				return fmt.Errorf("failed to decrement stock: %w", stockErr)
			}

			orderItem := &model.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
				UnitCost:  product.CostPrice,
			}
			if itemErr := s.orderRepo.CreateItem(txCtx, orderItem); itemErr != nil {
				return fmt.Errorf("failed to create order item: %w", itemErr)
			}

			qty := decimal.NewFromInt(int64(item.Quantity))
			order.Total = order.Total.Add(product.Price.Mul(qty))
			order.TotalCost = order.TotalCost.Add(product.CostPrice.Mul(qty))
			order.Items = append(order.Items, *orderItem)
			productNames = append(productNames, product.Name)

			product.StockQuantity = newStock
			status := CalculateStockStatus(statusInput(product), now)
			if status.Status != StockStatusInStock {
				alerts = append(alerts, ws.StockAlert{
					Event:     ws.EventStockAlert,
					ProductID: product.ID.String(),
					SKU:       product.SKU,
					Name:      product.Name,
					Stock:     newStock,
					Status:    status.Status,
				})
			}
		}

		if saveErr := s.orderRepo.Update(txCtx, &order); saveErr != nil {
			return fmt.Errorf("failed to finalize order totals: %w", saveErr)
		}

		if clearErr := s.cartRepo.ClearByUser(txCtx, uid); clearErr != nil {
			return fmt.Errorf("failed to clear cart: %w", clearErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"order_number": order.OrderNumber,
			"total":        order.Total,
			"items":        len(order.Items),
		})
		audit := &model.ActivityLog{
			UserID:     &uid,
			Action:     model.ActionPlaceOrder,
			EntityID:   order.ID.String(),
			EntityName: strings.Join(productNames, ", "),
			Details:    string(details),
		}
		if auditErr := s.activityRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write activity log: %w", auditErr)
		}

		created = &order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastAlerts(alerts)
	return created, nil
}

// UpdateStatus applies one lifecycle transition under a row lock.
// Delivery finalizes the financials: the revenue CREDIT and COGS DEBIT ledger
// entries are written in the same transaction, and because DELIVERED is
// terminal the entries cannot be generated twice. Cancellation restocks
// every line item.
func (s *orderService) UpdateStatus(ctx context.Context, id, userID string, req OrderStatusRequest) (*model.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order id", ErrValidation)
	}

	var updated *model.Order
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, findErr := s.orderRepo.FindByIDForUpdate(txCtx, orderID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order not found", ErrNotFound)
			}
			return findErr
		}

		if !CanTransitionOrder(order.Status, req.Status) {
			return fmt.Errorf("%w: cannot transition order from %s to %s", ErrConflict, order.Status, req.Status)
		}

		now := time.Now().UTC()
		action := model.ActionUpdateOrderStatus
		order.Status = req.Status

		switch req.Status {
		case model.OrderStatusDelivered:
			order.DeliveredAt = &now
			order.PaymentStatus = model.PaymentStatusPaid
			if ledgerErr := s.writeDeliveryLedger(txCtx, order, now); ledgerErr != nil {
				return ledgerErr
			}
		case model.OrderStatusCancelled:
			order.CancelledAt = &now
			action = model.ActionCancelOrder
			if restockErr := s.restockItems(txCtx, order); restockErr != nil {
				return restockErr
			}
		}

		if saveErr := s.orderRepo.Update(txCtx, order); saveErr != nil {
			return fmt.Errorf("failed to update order: %w", saveErr)
		}

		details, _ := json.Marshal(map[string]interface{}{"status": req.Status})
		audit := &model.ActivityLog{
			UserID:     parseUserID(userID),
			Action:     action,
			EntityID:   order.ID.String(),
			EntityName: order.OrderNumber,
			Details:    string(details),
		}
		if auditErr := s.activityRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write activity log: %w", auditErr)
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order id", ErrValidation)
	}
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order not found", ErrNotFound)
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, page, limit int, userID, status string) ([]model.Order, int64, error) {
	var uid *uuid.UUID
	if userID != "" {
		parsed, err := uuid.Parse(userID)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid user id", ErrValidation)
		}
		uid = &parsed
	}
	return s.orderRepo.List(ctx, page, limit, uid, status)
}

// writeDeliveryLedger appends the revenue CREDIT and COGS DEBIT rows for a
// delivered order.
func (s *orderService) writeDeliveryLedger(ctx context.Context, order *model.Order, at time.Time) error {
	credit := &model.LedgerEntry{
		SourceType:  model.LedgerSourceOrder,
		Direction:   model.LedgerCredit,
		Amount:      order.Total,
		OrderID:     &order.ID,
		Description: "Revenue for order " + order.OrderNumber,
		EntryDate:   at,
	}
	if err := s.ledgerRepo.Create(ctx, credit); err != nil {
		return fmt.Errorf("failed to write revenue ledger entry: %w", err)
	}

	debit := &model.LedgerEntry{
		SourceType:  model.LedgerSourceOrder,
		Direction:   model.LedgerDebit,
		Amount:      order.TotalCost,
		OrderID:     &order.ID,
		Description: "COGS for order " + order.OrderNumber,
		EntryDate:   at,
	}
	if err := s.ledgerRepo.Create(ctx, debit); err != nil {
		return fmt.Errorf("failed to write COGS ledger entry: %w", err)
	}
	return nil
}

func (s *orderService) restockItems(ctx context.Context, order *model.Order) error {
	for _, item := range order.Items {
		product, err := s.productRepo.FindByIDForUpdate(ctx, item.ProductID)
		if err != nil {
			return fmt.Errorf("failed to load product for restock: %w", err)
		}
		if err := s.productRepo.UpdateStock(ctx, product.ID, product.StockQuantity+item.Quantity); err != nil {
			return fmt.Errorf("failed to restock product: %w", err)
		}
	}
	return nil
}

func (s *orderService) broadcastAlerts(alerts []ws.StockAlert) {
	if s.hub == nil {
		return
	}
	for _, alert := range alerts {
		payload, err := json.Marshal(alert)
		if err != nil {
			continue
		}
		select {
		case s.hub.Broadcast <- payload:
		default:
		}
	}
}

func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%s",
		time.Now().UTC().Format("20060102"),
		strings.ToUpper(uuid.NewString()[:8]))
}
