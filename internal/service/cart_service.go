package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type CartResponse struct {
	Items []model.CartItem `json:"items"`
	Total decimal.Decimal  `json:"total"`
}

// --- Interface ---

type CartService interface {
	SetItem(ctx context.Context, userID string, req CartItemRequest) (*model.CartItem, error)
	GetCart(ctx context.Context, userID string) (*CartResponse, error)
	RemoveItem(ctx context.Context, userID, productID string) error
	ClearCart(ctx context.Context, userID string) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

// SetItem adds a product to the cart or replaces its quantity. The MOQ is
// enforced here for fast feedback; checkout re-validates against live stock.
func (s *cartService) SetItem(ctx context.Context, userID string, req CartItemRequest) (*model.CartItem, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	pid, err := uuid.Parse(req.ProductID)
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
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product is not available", ErrValidation)
	}
	if req.Quantity < product.MOQ {
		return nil, fmt.Errorf("%w: %s requires a minimum of %d units", ErrValidation, product.Name, product.MOQ)
	}
	if req.Quantity > product.StockQuantity {
		return nil, fmt.Errorf("%w: only %d units of %s in stock", ErrValidation, product.StockQuantity, product.Name)
	}

	item := &model.CartItem{
		UserID:    uid,
		ProductID: pid,
		Quantity:  req.Quantity,
	}
	if err := s.cartRepo.Upsert(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save cart item: %w", err)
	}

	return item, nil
}

func (s *cartService) GetCart(ctx context.Context, userID string) (*CartResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	items, err := s.cartRepo.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range items {
		if item.Product != nil {
			total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}

	return &CartResponse{Items: items, Total: total}, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	pid, err := uuid.Parse(productID)
	if err != nil {
		return fmt.Errorf("%w: invalid product id", ErrValidation)
	}
	return s.cartRepo.DeleteItem(ctx, uid, pid)
}

func (s *cartService) ClearCart(ctx context.Context, userID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user id", ErrValidation)
	}
	return s.cartRepo.ClearByUser(ctx, uid)
}
