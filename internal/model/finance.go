package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerDirection constants
const (
	LedgerCredit = "CREDIT"
	LedgerDebit  = "DEBIT"
)

// LedgerSourceType constants
const (
	LedgerSourceOrder        = "ORDER"
	LedgerSourceCost         = "COST"
	LedgerSourcePayroll      = "PAYROLL"
	LedgerSourceDistribution = "DISTRIBUTION"
	LedgerSourceManual       = "MANUAL"
)

// LedgerEntry is an append-only financial ledger row. Reconciliation flips
// IsReconciled and stamps the acting admin; amounts are never mutated.
type LedgerEntry struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SourceType   string          `gorm:"type:varchar(20);not null;index" json:"source_type"`
	Direction    string          `gorm:"type:varchar(10);not null;index" json:"direction"` // CREDIT, DEBIT
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	OrderID      *uuid.UUID      `gorm:"type:uuid;index" json:"order_id"`
	Description  string          `gorm:"type:text" json:"description"`
	EntryDate    time.Time       `gorm:"not null;index" json:"entry_date"`
	IsReconciled bool            `gorm:"default:false;index" json:"is_reconciled"`
	ReconciledBy *uuid.UUID      `gorm:"type:uuid" json:"reconciled_by"`
	ReconciledAt *time.Time      `json:"reconciled_at"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CostCategory constants
const (
	CostCategoryRent      = "RENT"
	CostCategoryUtilities = "UTILITIES"
	CostCategorySalary    = "SALARY"
	CostCategoryMarketing = "MARKETING"
	CostCategoryLogistics = "LOGISTICS"
	CostCategoryOther     = "OTHER"
)

// CostPaymentStatus constants
const (
	CostUnpaid = "UNPAID"
	CostPaid   = "PAID"
)

// OperationalCost is an append-only expense row with a simple approval
// workflow. Only approved costs count against net profit.
type OperationalCost struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Category      string          `gorm:"type:varchar(30);not null;index" json:"category"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	Description   string          `gorm:"type:text" json:"description"`
	CostDate      time.Time       `gorm:"not null;index" json:"cost_date"`
	Month         int             `gorm:"type:int;not null" json:"month"`
	Year          int             `gorm:"type:int;not null;index" json:"year"`
	PaymentStatus string          `gorm:"type:varchar(20);not null;default:'UNPAID'" json:"payment_status"`
	IsApproved    bool            `gorm:"default:false;index" json:"is_approved"`
	ApprovedBy    *uuid.UUID      `gorm:"type:uuid" json:"approved_by"`
	ApprovedAt    *time.Time      `json:"approved_at"`
	CreatedBy     *uuid.UUID      `gorm:"type:uuid" json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
