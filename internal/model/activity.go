package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateProduct      = "CREATE_PRODUCT"
	ActionUpdateProduct      = "UPDATE_PRODUCT"
	ActionDeleteProduct      = "DELETE_PRODUCT"
	ActionAdjustStock        = "ADJUST_STOCK"
	ActionPlaceOrder         = "PLACE_ORDER"
	ActionUpdateOrderStatus  = "UPDATE_ORDER_STATUS"
	ActionCancelOrder        = "CANCEL_ORDER"
	ActionCreatePartner      = "CREATE_PARTNER"
	ActionUpdatePartner      = "UPDATE_PARTNER"
	ActionDeactivatePartner  = "DEACTIVATE_PARTNER"
	ActionDistributeProfit   = "DISTRIBUTE_PROFIT"
	ActionUpdateDistribution = "UPDATE_DISTRIBUTION"
	ActionCreateLedgerEntry  = "CREATE_LEDGER_ENTRY"
	ActionReconcileLedger    = "RECONCILE_LEDGER"
	ActionCreateCost         = "CREATE_COST"
	ActionApproveCost        = "APPROVE_COST"
	ActionGeneratePayroll    = "GENERATE_PAYROLL"
	ActionPaySalary          = "PAY_SALARY"
)

// ActivityLog tracks Who, What, and When for critical system changes.
// Written inside the same transaction as the mutation it records.
type ActivityLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable for system-generated entries
	User       *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"` // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
