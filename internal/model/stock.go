package model

import (
	"time"

	"github.com/google/uuid"
)

// StockAdjustmentType constants
const (
	AdjustmentAdd    = "add"
	AdjustmentRemove = "remove"
	AdjustmentSet    = "set"
)

// StockAdjustment is the audit trail row written in the same transaction as
// every manual stock change.
type StockAdjustment struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	Product        *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	AdjustmentType string     `gorm:"type:varchar(10);not null" json:"adjustment_type"` // add, remove, set
	Quantity       int        `gorm:"type:int;not null" json:"quantity"`
	PreviousStock  int        `gorm:"type:int;not null" json:"previous_stock"`
	NewStock       int        `gorm:"type:int;not null" json:"new_stock"`
	Reason         string     `gorm:"type:text;not null" json:"reason"`
	AdjustedBy     *uuid.UUID `gorm:"type:uuid;index" json:"adjusted_by"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
}
