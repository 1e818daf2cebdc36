package handler

import (
	"net/http"
	"strconv"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/middleware"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/service"
	"github.com/raihanuddin561/skyzonebd-sub004/pkg/pagination"
	"github.com/raihanuddin561/skyzonebd-sub004/pkg/response"

	"github.com/gin-gonic/gin"
)

type PayrollHandler struct {
	payrollService service.PayrollService
}

func NewPayrollHandler(payrollService service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

func (h *PayrollHandler) RegisterRoutes(router *gin.RouterGroup) {
	employees := router.Group("/api/employees", middleware.RequireRole(model.RoleAdmin, model.RoleManager))
	{
		employees.GET("", h.ListEmployees)
		employees.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateEmployee)
	}

	payroll := router.Group("/api/payroll", middleware.RequireRole(model.RoleAdmin))
	{
		payroll.POST("/generate", h.GeneratePayroll)
		payroll.POST("/:id/pay", h.PaySalary)
		payroll.GET("/payments", h.ListPayments)
	}
}

// ListEmployees returns paginated employees
// @Summary      List employees
// @Tags         payroll
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int   false  "Page number (default 1)"
// @Param        limit   query     int   false  "Items per page (default 20)"
// @Param        active  query     bool  false  "Only active employees"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/employees [get]
func (h *PayrollHandler) ListEmployees(c *gin.Context) {
	p := pagination.Parse(c)
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active", "false"))

	employees, total, err := h.payrollService.ListEmployees(c.Request.Context(), p.Page, p.Limit, activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paginated(employees, total, p.Page, p.Limit)))
}

// CreateEmployee adds an employee record
// @Summary      Create employee
// @Tags         payroll
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateEmployeeRequest  true  "Employee Payload"
// @Success      201      {object}  response.Response{data=model.Employee}
// @Failure      400      {object}  response.Response
// @Router       /api/employees [post]
func (h *PayrollHandler) CreateEmployee(c *gin.Context) {
	var req service.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	employee, err := h.payrollService.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, employee))
}

// GeneratePayroll creates unpaid salary rows for a month
// @Summary      Generate payroll
// @Description  Creates one unpaid salary row per active employee for the month. Employees already generated for the month are skipped.
// @Tags         payroll
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.GeneratePayrollRequest  true  "Generate Payload"
// @Success      201      {object}  response.Response{data=[]model.SalaryPayment}
// @Failure      400      {object}  response.Response
// @Router       /api/payroll/generate [post]
func (h *PayrollHandler) GeneratePayroll(c *gin.Context) {
	var req service.GeneratePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	payments, err := h.payrollService.GeneratePayroll(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, payments))
}

// PaySalary marks a salary payment as paid
// @Summary      Pay salary
// @Description  Marks the payment paid and posts the expense to costs and the ledger in one transaction
// @Tags         payroll
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                    true  "Payment ID"
// @Param        payload  body      service.PaySalaryRequest  true  "Payment Payload"
// @Success      200      {object}  response.Response{data=model.SalaryPayment}
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/payroll/{id}/pay [post]
func (h *PayrollHandler) PaySalary(c *gin.Context) {
	var req service.PaySalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	payment, err := h.payrollService.PaySalary(c.Request.Context(), c.Param("id"), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, payment))
}

// ListPayments returns paginated salary payments
// @Summary      List salary payments
// @Tags         payroll
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20)"
// @Param        month  query     int  false  "Filter by month"
// @Param        year   query     int  false  "Filter by year"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/payroll/payments [get]
func (h *PayrollHandler) ListPayments(c *gin.Context) {
	p := pagination.Parse(c)
	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))

	payments, total, err := h.payrollService.ListPayments(c.Request.Context(), p.Page, p.Limit, month, year)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paginated(payments, total, p.Page, p.Limit)))
}
