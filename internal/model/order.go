package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus constants. Forward-only lifecycle; CANCELLED is reachable until
// the order ships and restocks the order's items.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusConfirmed  = "CONFIRMED"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

// PaymentStatus constants
const (
	PaymentStatusUnpaid = "UNPAID"
	PaymentStatusPaid   = "PAID"
)

// Order is a placed customer order. Total and TotalCost are snapshots taken at
// checkout time so later price edits never shift historical revenue or COGS.
type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber   string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_number"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status        string          `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Total         decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total"`
	TotalCost     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_cost"` // COGS snapshot
	PaymentStatus string          `gorm:"type:varchar(20);not null;default:'UNPAID'" json:"payment_status"`
	PaymentMethod string          `gorm:"type:varchar(50)" json:"payment_method"`
	ShippingNote  string          `gorm:"type:text" json:"shipping_note"`
	DeliveredAt   *time.Time      `json:"delivered_at"`
	CancelledAt   *time.Time      `json:"cancelled_at"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// OrderItem is a line item with unit price and unit cost frozen at checkout.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int             `gorm:"type:int;not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_price"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_cost"`
}
