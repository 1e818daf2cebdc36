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
	"gorm.io/gorm"
)

// --- DTOs ---

type StockAdjustRequest struct {
	ProductID      string `json:"product_id" binding:"required"`
	AdjustmentType string `json:"adjustment_type" binding:"required,oneof=add remove set"`
	Quantity       int    `json:"quantity" binding:"gte=0"`
	Reason         string `json:"reason" binding:"required,min=5"`
}

type StockAdjustResponse struct {
	ProductID     string `json:"product_id"`
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
	Status        string `json:"status"`
}

type ProductStockStatus struct {
	ProductID string            `json:"product_id"`
	SKU       string            `json:"sku"`
	Name      string            `json:"name"`
	Stock     int               `json:"stock"`
	Result    StockStatusResult `json:"result"`
}

// --- Interface ---

type InventoryService interface {
	StockStatusReport(ctx context.Context) ([]ProductStockStatus, error)
	ProductStatus(ctx context.Context, productID string) (*ProductStockStatus, error)
	AdjustStock(ctx context.Context, userID string, req StockAdjustRequest) (*StockAdjustResponse, error)
	AdjustmentHistory(ctx context.Context, productID string, page, limit int) ([]model.StockAdjustment, int64, error)
}

type inventoryService struct {
	productRepo  repository.ProductRepository
	stockRepo    repository.StockAdjustmentRepository
	activityRepo repository.ActivityRepository
	txManager    repository.TransactionManager
	hub          *ws.Hub
}

func NewInventoryService(
	productRepo repository.ProductRepository,
	stockRepo repository.StockAdjustmentRepository,
	activityRepo repository.ActivityRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		productRepo:  productRepo,
		stockRepo:    stockRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

// StockStatusReport classifies every active product. Recomputed fresh per
// call; nothing is persisted.
func (s *inventoryService) StockStatusReport(ctx context.Context) ([]ProductStockStatus, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	report := make([]ProductStockStatus, 0, len(products))
	for _, p := range products {
		report = append(report, ProductStockStatus{
			ProductID: p.ID.String(),
			SKU:       p.SKU,
			Name:      p.Name,
			Stock:     p.StockQuantity,
			Result:    CalculateStockStatus(statusInput(&p), now),
		})
	}
	return report, nil
}

func (s *inventoryService) ProductStatus(ctx context.Context, productID string) (*ProductStockStatus, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id", ErrValidation)
	}

	product, err := s.productRepo.FindByID(ctx, pid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, err
	}

	return &ProductStockStatus{
		ProductID: product.ID.String(),
		SKU:       product.SKU,
		Name:      product.Name,
		Stock:     product.StockQuantity,
		Result:    CalculateStockStatus(statusInput(product), time.Now().UTC()),
	}, nil
}

// AdjustStock applies a validated manual adjustment, writes the stock value
// and the audit trail row in one transaction, and broadcasts an alert when
// the product drops to reorder territory.
func (s *inventoryService) AdjustStock(ctx context.Context, userID string, req StockAdjustRequest) (*StockAdjustResponse, error) {
	pid, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id", ErrValidation)
	}

	var resp *StockAdjustResponse
	var alertProduct *model.Product

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		product, findErr := s.productRepo.FindByIDForUpdate(txCtx, pid)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product not found", ErrNotFound)
			}
			return findErr
		}

		result := ValidateStockAdjustment(product.StockQuantity, req.Quantity, req.AdjustmentType, req.Reason)
		if !result.Valid {
			return fmt.Errorf("%w: %s", ErrValidation, strings.Join(result.Errors, "; "))
		}

		previous := product.StockQuantity
		if updateErr := s.productRepo.UpdateStock(txCtx, product.ID, result.NewStock); updateErr != nil {
			return fmt.Errorf("failed to update stock: %w", updateErr)
		}

		adjustment := &model.StockAdjustment{
			ProductID:      product.ID,
			AdjustmentType: req.AdjustmentType,
			Quantity:       req.Quantity,
			PreviousStock:  previous,
			NewStock:       result.NewStock,
			Reason:         req.Reason,
			AdjustedBy:     parseUserID(userID),
		}
		if createErr := s.stockRepo.Create(txCtx, adjustment); createErr != nil {
			return fmt.Errorf("failed to record stock adjustment: %w", createErr)
		}

		details, _ := json.Marshal(req)
		audit := &model.ActivityLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionAdjustStock,
			EntityID:   product.ID.String(),
			EntityName: product.Name,
			Details:    string(details),
		}
		if auditErr := s.activityRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write activity log: %w", auditErr)
		}

		product.StockQuantity = result.NewStock
		status := CalculateStockStatus(statusInput(product), time.Now().UTC())
		resp = &StockAdjustResponse{
			ProductID:     product.ID.String(),
			PreviousStock: previous,
			NewStock:      result.NewStock,
			Status:        status.Status,
		}
		if status.Status != StockStatusInStock {
			copied := *product
			alertProduct = &copied
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if alertProduct != nil {
		s.broadcastStockAlert(alertProduct, resp.Status)
	}

	return resp, nil
}

func (s *inventoryService) AdjustmentHistory(ctx context.Context, productID string, page, limit int) ([]model.StockAdjustment, int64, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: invalid product id", ErrValidation)
	}
	return s.stockRepo.ListByProduct(ctx, pid, page, limit)
}

func (s *inventoryService) broadcastStockAlert(product *model.Product, status string) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(ws.StockAlert{
		Event:     ws.EventStockAlert,
		ProductID: product.ID.String(),
		SKU:       product.SKU,
		Name:      product.Name,
		Stock:     product.StockQuantity,
		Status:    status,
	})
	if err != nil {
		return
	}
	// Non-blocking: drop the alert if no reader is draining the channel.
	select {
	case s.hub.Broadcast <- payload:
	default:
	}
}

func statusInput(p *model.Product) StockStatusInput {
	return StockStatusInput{
		CurrentStock:    p.StockQuantity,
		ReorderPoint:    p.ReorderPoint,
		ReorderQuantity: p.ReorderQuantity,
		MOQ:             p.MOQ,
		AvgDailySales:   p.AvgDailySales,
	}
}
