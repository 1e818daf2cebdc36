package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateProductRequest struct {
	SKU             string  `json:"sku" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	Price           float64 `json:"price" binding:"required,gt=0"`
	CostPrice       float64 `json:"cost_price" binding:"gte=0"`
	StockQuantity   int     `json:"stock_quantity" binding:"gte=0"`
	MOQ             int     `json:"moq" binding:"omitempty,gte=1"`
	ReorderPoint    int     `json:"reorder_point" binding:"gte=0"`
	ReorderQuantity int     `json:"reorder_quantity" binding:"gte=0"`
	AvgDailySales   float64 `json:"avg_daily_sales" binding:"gte=0"`
}

type UpdateProductRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Price           *float64 `json:"price" binding:"omitempty,gt=0"`
	CostPrice       *float64 `json:"cost_price" binding:"omitempty,gte=0"`
	MOQ             *int     `json:"moq" binding:"omitempty,gte=1"`
	ReorderPoint    *int     `json:"reorder_point" binding:"omitempty,gte=0"`
	ReorderQuantity *int     `json:"reorder_quantity" binding:"omitempty,gte=0"`
	AvgDailySales   *float64 `json:"avg_daily_sales" binding:"omitempty,gte=0"`
	IsActive        *bool    `json:"is_active"`
}

type ProductFilter struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

// --- Interface ---

type CatalogService interface {
	CreateProduct(ctx context.Context, userID string, req CreateProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id, userID string, req UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id, userID string) error
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)
	CreateReview(ctx context.Context, productID, userID string, req CreateReviewRequest) (*model.Review, error)
	ListReviews(ctx context.Context, productID string, page, limit int) ([]model.Review, int64, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	activityRepo repository.ActivityRepository
	txManager    repository.TransactionManager
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	activityRepo repository.ActivityRepository,
	txManager repository.TransactionManager,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
	}
}

func (s *catalogService) CreateProduct(ctx context.Context, userID string, req CreateProductRequest) (*model.Product, error) {
	if _, err := s.productRepo.FindBySKU(ctx, req.SKU); err == nil {
		return nil, fmt.Errorf("%w: SKU %s already exists", ErrConflict, req.SKU)
	}

	moq := req.MOQ
	if moq == 0 {
		moq = 1
	}

	product := &model.Product{
		SKU:             req.SKU,
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Price:           decimal.NewFromFloat(req.Price),
		CostPrice:       decimal.NewFromFloat(req.CostPrice),
		StockQuantity:   req.StockQuantity,
		MOQ:             moq,
		ReorderPoint:    req.ReorderPoint,
		ReorderQuantity: req.ReorderQuantity,
		AvgDailySales:   req.AvgDailySales,
		IsActive:        true,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.productRepo.Create(txCtx, product); createErr != nil {
			return fmt.Errorf("failed to create product: %w", createErr)
		}

		details, _ := json.Marshal(req)
		audit := &model.ActivityLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionCreateProduct,
			EntityID:   product.ID.String(),
			EntityName: product.Name,
			Details:    string(details),
		}
		return s.activityRepo.Log(txCtx, audit)
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id, userID string, req UpdateProductRequest) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id", ErrValidation)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, err
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Price != nil {
		product.Price = decimal.NewFromFloat(*req.Price)
	}
	if req.CostPrice != nil {
		product.CostPrice = decimal.NewFromFloat(*req.CostPrice)
	}
	if req.MOQ != nil {
		product.MOQ = *req.MOQ
	}
	if req.ReorderPoint != nil {
		product.ReorderPoint = *req.ReorderPoint
	}
	if req.ReorderQuantity != nil {
		product.ReorderQuantity = *req.ReorderQuantity
	}
	if req.AvgDailySales != nil {
		product.AvgDailySales = *req.AvgDailySales
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.productRepo.Update(txCtx, product); updateErr != nil {
			return fmt.Errorf("failed to update product: %w", updateErr)
		}

		details, _ := json.Marshal(req)
		audit := &model.ActivityLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionUpdateProduct,
			EntityID:   product.ID.String(),
			EntityName: product.Name,
			Details:    string(details),
		}
		return s.activityRepo.Log(txCtx, audit)
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id, userID string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid product id", ErrValidation)
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return err
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.productRepo.Delete(txCtx, productID); deleteErr != nil {
			return fmt.Errorf("failed to delete product: %w", deleteErr)
		}

		audit := &model.ActivityLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionDeleteProduct,
			EntityID:   product.ID.String(),
			EntityName: product.Name,
			Details:    `{"deleted": true}`,
		}
		return s.activityRepo.Log(txCtx, audit)
	})
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id", ErrValidation)
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) ListProducts(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	return s.productRepo.List(ctx, filter.Page, filter.Limit, filter.Search, filter.Category)
}

func (s *catalogService) CreateReview(ctx context.Context, productID, userID string, req CreateReviewRequest) (*model.Review, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product id", ErrValidation)
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	if _, err := s.productRepo.FindByID(ctx, pid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, err
	}

	review := &model.Review{
		ProductID: pid,
		UserID:    uid,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.productRepo.CreateReview(ctx, review); err != nil {
		// The product+user unique index turns a double review into a conflict.
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
			return nil, fmt.Errorf("%w: you have already reviewed this product", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}

func (s *catalogService) ListReviews(ctx context.Context, productID string, page, limit int) ([]model.Review, int64, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: invalid product id", ErrValidation)
	}
	return s.productRepo.ListReviews(ctx, pid, page, limit)
}
