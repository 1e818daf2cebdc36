package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog item. Wholesale fields (MOQ, reorder point, reorder
// quantity) drive cart validation and the stock status calculator.
type Product struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SKU             string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"sku"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	Category        string          `gorm:"type:varchar(100);index" json:"category"`
	Price           decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"price"`
	CostPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"cost_price"`
	StockQuantity   int             `gorm:"type:int;not null;default:0" json:"stock_quantity"`
	MOQ             int             `gorm:"column:moq;type:int;not null;default:1" json:"moq"` // Minimum order quantity for wholesale buyers
	ReorderPoint    int             `gorm:"type:int;not null;default:0" json:"reorder_point"`
	ReorderQuantity int             `gorm:"type:int;not null;default:0" json:"reorder_quantity"`
	AvgDailySales   float64         `gorm:"type:decimal(10,2);not null;default:0" json:"avg_daily_sales"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

// Review is a customer product review. One review per user per product.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_product_user" json:"product_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_product_user" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Rating    int       `gorm:"type:int;not null" json:"rating"` // 1..5
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItem is one line of a user's cart. Quantity must already satisfy the
// product MOQ when written; checkout re-validates against live stock.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"type:int;not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
