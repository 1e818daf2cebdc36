package repository

import (
	"context"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PayrollRepository interface {
	CreateEmployee(ctx context.Context, employee *model.Employee) error
	UpdateEmployee(ctx context.Context, employee *model.Employee) error
	FindEmployeeByID(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	ListEmployees(ctx context.Context, page, limit int, activeOnly bool) ([]model.Employee, int64, error)
	ListActiveEmployees(ctx context.Context) ([]model.Employee, error)
	CreatePayment(ctx context.Context, payment *model.SalaryPayment) error
	UpdatePayment(ctx context.Context, payment *model.SalaryPayment) error
	FindPaymentByID(ctx context.Context, id uuid.UUID) (*model.SalaryPayment, error)
	FindPaymentByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.SalaryPayment, error)
	ListPayments(ctx context.Context, page, limit, month, year int) ([]model.SalaryPayment, int64, error)
	PaymentExists(ctx context.Context, employeeID uuid.UUID, month, year int) (bool, error)
}

type payrollRepository struct {
	db *gorm.DB
}

func NewPayrollRepository(db *gorm.DB) PayrollRepository {
	return &payrollRepository{db: db}
}

func (r *payrollRepository) CreateEmployee(ctx context.Context, employee *model.Employee) error {
	return GetDB(ctx, r.db).Create(employee).Error
}

func (r *payrollRepository) UpdateEmployee(ctx context.Context, employee *model.Employee) error {
	return GetDB(ctx, r.db).Save(employee).Error
}

func (r *payrollRepository) FindEmployeeByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var employee model.Employee
	if err := GetDB(ctx, r.db).First(&employee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *payrollRepository) ListEmployees(ctx context.Context, page, limit int, activeOnly bool) ([]model.Employee, int64, error) {
	var employees []model.Employee
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Employee{})
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("name asc").Offset(offset).Limit(limit).Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *payrollRepository) ListActiveEmployees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	if err := GetDB(ctx, r.db).Where("is_active = ?", true).Order("name asc").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *payrollRepository) CreatePayment(ctx context.Context, payment *model.SalaryPayment) error {
	return GetDB(ctx, r.db).Create(payment).Error
}

func (r *payrollRepository) UpdatePayment(ctx context.Context, payment *model.SalaryPayment) error {
	return GetDB(ctx, r.db).Save(payment).Error
}

func (r *payrollRepository) FindPaymentByID(ctx context.Context, id uuid.UUID) (*model.SalaryPayment, error) {
	var payment model.SalaryPayment
	if err := GetDB(ctx, r.db).Preload("Employee").First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *payrollRepository) FindPaymentByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.SalaryPayment, error) {
	var payment model.SalaryPayment
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *payrollRepository) ListPayments(ctx context.Context, page, limit, month, year int) ([]model.SalaryPayment, int64, error) {
	var payments []model.SalaryPayment
	var total int64

	db := GetDB(ctx, r.db).Model(&model.SalaryPayment{})
	if month > 0 {
		db = db.Where("month = ?", month)
	}
	if year > 0 {
		db = db.Where("year = ?", year)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Employee").Order("created_at desc").Offset(offset).Limit(limit).Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

func (r *payrollRepository) PaymentExists(ctx context.Context, employeeID uuid.UUID, month, year int) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.SalaryPayment{}).
		Where("employee_id = ? AND month = ? AND year = ?", employeeID, month, year).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
