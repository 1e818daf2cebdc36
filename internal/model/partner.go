package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Partner is a profit-sharing business partner. The sum of
// ProfitSharePercentage over active partners must stay at or below 100 unless
// an admin explicitly overrides; the override is logged, never silent.
// Partners with paid distributions are deactivated rather than deleted.
type Partner struct {
	ID                    uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name                  string          `gorm:"type:varchar(255);not null" json:"name"`
	Email                 string          `gorm:"type:varchar(255)" json:"email"`
	Phone                 string          `gorm:"type:varchar(50)" json:"phone"`
	ProfitSharePercentage decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0" json:"profit_share_percentage"`
	IsActive              bool            `gorm:"default:true;index" json:"is_active"`
	TotalProfitReceived   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_profit_received"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
	DeletedAt             gorm.DeletedAt  `gorm:"index" json:"-"`
}

// DistributionStatus constants. Forward-only: PENDING -> APPROVED -> PAID,
// with REJECTED reachable from PENDING or APPROVED. PAID is terminal.
const (
	DistributionPending  = "PENDING"
	DistributionApproved = "APPROVED"
	DistributionPaid     = "PAID"
	DistributionRejected = "REJECTED"
)

// PeriodType constants for distribution runs and profit reports
const (
	PeriodTypeMonthly   = "MONTHLY"
	PeriodTypeQuarterly = "QUARTERLY"
	PeriodTypeYearly    = "YEARLY"
	PeriodTypeCustom    = "CUSTOM"
)

// ProfitDistribution is one partner's cut of a period's net profit.
// PartnerShare snapshots the percentage at allocation time so later partner
// edits never change a pending payout. The partner+period pair is unique,
// which is what makes a re-run of the same period fail instead of duplicating
// rows; re-running a rejected period requires deleting its rows first.
type ProfitDistribution struct {
	ID                 uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PartnerID          uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_distribution_partner_period" json:"partner_id"`
	Partner            *Partner        `gorm:"foreignKey:PartnerID" json:"partner,omitempty"`
	PeriodType         string          `gorm:"type:varchar(20);not null" json:"period_type"`
	StartDate          time.Time       `gorm:"not null;uniqueIndex:idx_distribution_partner_period" json:"start_date"`
	EndDate            time.Time       `gorm:"not null;uniqueIndex:idx_distribution_partner_period" json:"end_date"`
	TotalRevenue       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_revenue"`
	TotalCosts         decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_costs"`
	NetProfit          decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"net_profit"`
	PartnerShare       decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"partner_share"` // Percentage snapshot
	DistributionAmount decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"distribution_amount"`
	Status             string          `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	ApprovedBy         *uuid.UUID      `gorm:"type:uuid" json:"approved_by"`
	ApprovedAt         *time.Time      `json:"approved_at"`
	PaidAt             *time.Time      `json:"paid_at"`
	PaymentMethod      string          `gorm:"type:varchar(50)" json:"payment_method"`
	PaymentReference   string          `gorm:"type:varchar(100)" json:"payment_reference"`
	RejectionReason    string          `gorm:"type:text" json:"rejection_reason"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
