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

type CostHandler struct {
	costService service.CostService
}

func NewCostHandler(costService service.CostService) *CostHandler {
	return &CostHandler{costService: costService}
}

func (h *CostHandler) RegisterRoutes(router *gin.RouterGroup) {
	costs := router.Group("/api/costs", middleware.RequireRole(model.RoleAdmin, model.RoleManager))
	{
		costs.GET("", h.ListCosts)
		costs.POST("", h.CreateCost)
		costs.POST("/:id/approve", middleware.RequireRole(model.RoleAdmin), h.ApproveCost)
	}
}

// ListCosts returns paginated operational costs
// @Summary      List operational costs
// @Tags         costs
// @Security     BearerAuth
// @Produce      json
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Items per page (default 20)"
// @Param        category  query     string  false  "Filter by category"
// @Param        month     query     int     false  "Filter by month"
// @Param        year      query     int     false  "Filter by year"
// @Success      200       {object}  response.Response{data=object}
// @Failure      500       {object}  response.Response
// @Router       /api/costs [get]
func (h *CostHandler) ListCosts(c *gin.Context) {
	p := pagination.Parse(c)
	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))
	filter := service.CostFilter{
		Category: c.Query("category"),
		Month:    month,
		Year:     year,
		Page:     p.Page,
		Limit:    p.Limit,
	}

	costs, total, err := h.costService.ListCosts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paginated(costs, total, p.Page, p.Limit)))
}

// CreateCost records an operational cost pending approval
// @Summary      Create operational cost
// @Tags         costs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateCostRequest  true  "Cost Payload"
// @Success      201      {object}  response.Response{data=model.OperationalCost}
// @Failure      400      {object}  response.Response
// @Router       /api/costs [post]
func (h *CostHandler) CreateCost(c *gin.Context) {
	var req service.CreateCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	cost, err := h.costService.CreateCost(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, cost))
}

// ApproveCost approves a cost and posts it to the ledger
// @Summary      Approve operational cost
// @Description  Marks the cost approved and writes a DEBIT ledger entry in the same transaction
// @Tags         costs
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Cost ID"
// @Success      200  {object}  response.Response{data=model.OperationalCost}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/costs/{id}/approve [post]
func (h *CostHandler) ApproveCost(c *gin.Context) {
	cost, err := h.costService.ApproveCost(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, cost))
}
