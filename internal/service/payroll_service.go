package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateEmployeeRequest struct {
	Name          string  `json:"name" binding:"required"`
	Position      string  `json:"position"`
	Email         string  `json:"email" binding:"omitempty,email"`
	MonthlySalary float64 `json:"monthly_salary" binding:"required,gt=0"`
	JoinedAt      string  `json:"joined_at"` // YYYY-MM-DD, defaults to today
}

type GeneratePayrollRequest struct {
	Month int `json:"month" binding:"required,gte=1,lte=12"`
	Year  int `json:"year" binding:"required,gte=2000"`
}

type PaySalaryRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// --- Interface ---

type PayrollService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*model.Employee, error)
	ListEmployees(ctx context.Context, page, limit int, activeOnly bool) ([]model.Employee, int64, error)
	GeneratePayroll(ctx context.Context, userID string, req GeneratePayrollRequest) ([]model.SalaryPayment, error)
	PaySalary(ctx context.Context, id, userID string, req PaySalaryRequest) (*model.SalaryPayment, error)
	ListPayments(ctx context.Context, page, limit, month, year int) ([]model.SalaryPayment, int64, error)
}

type payrollService struct {
	payrollRepo  repository.PayrollRepository
	costRepo     repository.CostRepository
	ledgerRepo   repository.LedgerRepository
	activityRepo repository.ActivityRepository
	txManager    repository.TransactionManager
}

func NewPayrollService(
	payrollRepo repository.PayrollRepository,
	costRepo repository.CostRepository,
	ledgerRepo repository.LedgerRepository,
	activityRepo repository.ActivityRepository,
	txManager repository.TransactionManager,
) PayrollService {
	return &payrollService{
		payrollRepo:  payrollRepo,
		costRepo:     costRepo,
		ledgerRepo:   ledgerRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
	}
}

func (s *payrollService) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*model.Employee, error) {
	joined := time.Now().UTC()
	if req.JoinedAt != "" {
		parsed, err := parseDate(req.JoinedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid joined_at", ErrValidation)
		}
		joined = parsed
	}

	employee := &model.Employee{
		Name:          req.Name,
		Position:      req.Position,
		Email:         req.Email,
		MonthlySalary: decimal.NewFromFloat(req.MonthlySalary),
		IsActive:      true,
		JoinedAt:      joined,
	}
	if err := s.payrollRepo.CreateEmployee(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return employee, nil
}

func (s *payrollService) ListEmployees(ctx context.Context, page, limit int, activeOnly bool) ([]model.Employee, int64, error) {
	return s.payrollRepo.ListEmployees(ctx, page, limit, activeOnly)
}

// GeneratePayroll creates one PENDING salary payment per active employee for
// the month. Employees already covered for that month are skipped, so a
// second run is a no-op rather than a duplicate.
func (s *payrollService) GeneratePayroll(ctx context.Context, userID string, req GeneratePayrollRequest) ([]model.SalaryPayment, error) {
	employees, err := s.payrollRepo.ListActiveEmployees(ctx)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, fmt.Errorf("%w: no active employees", ErrValidation)
	}

	var created []model.SalaryPayment
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		for _, employee := range employees {
			exists, existsErr := s.payrollRepo.PaymentExists(txCtx, employee.ID, req.Month, req.Year)
			if existsErr != nil {
				return existsErr
			}
			if exists {
				continue
			}

			payment := model.SalaryPayment{
				EmployeeID: employee.ID,
				Month:      req.Month,
				Year:       req.Year,
				Amount:     employee.MonthlySalary,
				Status:     model.SalaryPending,
			}
			if createErr := s.payrollRepo.CreatePayment(txCtx, &payment); createErr != nil {
				return fmt.Errorf("failed to create salary payment: %w", createErr)
			}
			created = append(created, payment)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"month":     req.Month,
			"year":      req.Year,
			"generated": len(created),
		})
		audit := &model.ActivityLog{
			UserID:     parseUserID(userID),
			Action:     model.ActionGeneratePayroll,
			EntityID:   fmt.Sprintf("%04d-%02d", req.Year, req.Month),
			EntityName: "payroll run",
			Details:    string(details),
		}
		return s.activityRepo.Log(txCtx, audit)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// PaySalary marks a pending payment paid and records it financially: a SALARY
// operational cost (pre-approved) and a DEBIT ledger entry, all in one
// transaction.
func (s *payrollService) PaySalary(ctx context.Context, id, userID string, req PaySalaryRequest) (*model.SalaryPayment, error) {
	paymentID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payment id", ErrValidation)
	}

	actor := parseUserID(userID)
	if actor == nil {
		return nil, fmt.Errorf("%w: acting user id is required", ErrValidation)
	}

	var paid *model.SalaryPayment
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		payment, findErr := s.payrollRepo.FindPaymentByIDForUpdate(txCtx, paymentID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: salary payment not found", ErrNotFound)
			}
			return findErr
		}

		if payment.Status == model.SalaryPaid {
			return fmt.Errorf("%w: salary payment is already paid", ErrConflict)
		}

		now := time.Now().UTC()
		payment.Status = model.SalaryPaid
		payment.PaidAt = &now
		payment.PaidBy = actor
		payment.PaymentMethod = req.PaymentMethod
		if saveErr := s.payrollRepo.UpdatePayment(txCtx, payment); saveErr != nil {
			return fmt.Errorf("failed to update salary payment: %w", saveErr)
		}

		costDate := time.Date(payment.Year, time.Month(payment.Month), 1, 0, 0, 0, 0, time.UTC)
		cost := &model.OperationalCost{
			Category:      model.CostCategorySalary,
			Amount:        payment.Amount,
			Description:   fmt.Sprintf("Salary %04d-%02d", payment.Year, payment.Month),
			CostDate:      costDate,
			Month:         payment.Month,
			Year:          payment.Year,
			PaymentStatus: model.CostPaid,
			IsApproved:    true,
			ApprovedBy:    actor,
			ApprovedAt:    &now,
			CreatedBy:     actor,
		}
		if costErr := s.costRepo.Create(txCtx, cost); costErr != nil {
			return fmt.Errorf("failed to record salary cost: %w", costErr)
		}

		entry := &model.LedgerEntry{
			SourceType:  model.LedgerSourcePayroll,
			Direction:   model.LedgerDebit,
			Amount:      payment.Amount,
			Description: fmt.Sprintf("Salary payment %04d-%02d", payment.Year, payment.Month),
			EntryDate:   now,
		}
		if ledgerErr := s.ledgerRepo.Create(txCtx, entry); ledgerErr != nil {
			return fmt.Errorf("failed to write payroll ledger entry: %w", ledgerErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"payment_method": req.PaymentMethod,
			"amount":         payment.Amount,
		})
		audit := &model.ActivityLog{
			UserID:     actor,
			Action:     model.ActionPaySalary,
			EntityID:   payment.ID.String(),
			EntityName: fmt.Sprintf("salary %04d-%02d", payment.Year, payment.Month),
			Details:    string(details),
		}
		if auditErr := s.activityRepo.Log(txCtx, audit); auditErr != nil {
			return fmt.Errorf("failed to write activity log: %w", auditErr)
		}

		paid = payment
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paid, nil
}

func (s *payrollService) ListPayments(ctx context.Context, page, limit, month, year int) ([]model.SalaryPayment, int64, error) {
	return s.payrollRepo.ListPayments(ctx, page, limit, month, year)
}
