package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employee is a payroll subject. Monthly payroll generation creates one
// SalaryPayment per active employee.
type Employee struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Position      string          `gorm:"type:varchar(100)" json:"position"`
	Email         string          `gorm:"type:varchar(255)" json:"email"`
	MonthlySalary decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"monthly_salary"`
	IsActive      bool            `gorm:"default:true;index" json:"is_active"`
	JoinedAt      time.Time       `json:"joined_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// SalaryPaymentStatus constants
const (
	SalaryPending = "PENDING"
	SalaryPaid    = "PAID"
)

// SalaryPayment is one employee's salary for one month. The
// employee+month+year key is unique so a payroll run cannot double-generate.
// Paying a salary appends a DEBIT ledger entry and a SALARY operational cost
// in the same transaction.
type SalaryPayment struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_salary_employee_month" json:"employee_id"`
	Employee      *Employee       `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Month         int             `gorm:"type:int;not null;uniqueIndex:idx_salary_employee_month" json:"month"`
	Year          int             `gorm:"type:int;not null;uniqueIndex:idx_salary_employee_month" json:"year"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	Status        string          `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	PaidAt        *time.Time      `json:"paid_at"`
	PaidBy        *uuid.UUID      `gorm:"type:uuid" json:"paid_by"`
	PaymentMethod string          `gorm:"type:varchar(50)" json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
