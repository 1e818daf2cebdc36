package handler

import (
	"net/http"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/middleware"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/service"
	"github.com/raihanuddin561/skyzonebd-sub004/pkg/pagination"
	"github.com/raihanuddin561/skyzonebd-sub004/pkg/response"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff)

	inventory := router.Group("/api/inventory", staff)
	{
		inventory.GET("/status", h.StockStatusReport)
		inventory.GET("/status/:id", h.ProductStatus)
	}

	stock := router.Group("/api/stock", staff)
	{
		stock.POST("/adjust", h.AdjustStock)
		stock.GET("/adjustments", h.AdjustmentHistory)
	}
}

// StockStatusReport returns the stock status of every active product
// @Summary      Inventory status report
// @Description  Classifies every active product as in_stock, low_stock, reorder_needed, or out_of_stock
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.ProductStockStatus}
// @Failure      500  {object}  response.Response
// @Router       /api/inventory/status [get]
func (h *InventoryHandler) StockStatusReport(c *gin.Context) {
	report, err := h.inventoryService.StockStatusReport(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}

// ProductStatus returns the stock status of one product
// @Summary      Product stock status
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Response{data=service.ProductStockStatus}
// @Failure      404  {object}  response.Response
// @Router       /api/inventory/status/{id} [get]
func (h *InventoryHandler) ProductStatus(c *gin.Context) {
	status, err := h.inventoryService.ProductStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, status))
}

// AdjustStock applies a manual stock adjustment
// @Summary      Adjust stock
// @Description  Applies an add, remove, or set adjustment with a mandatory reason and writes an audit row
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.StockAdjustRequest  true  "Adjustment Payload"
// @Success      200      {object}  response.Response{data=service.StockAdjustResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/stock/adjust [post]
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req service.StockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.inventoryService.AdjustStock(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// AdjustmentHistory lists past stock adjustments
// @Summary      Stock adjustment history
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        productId  query     string  false  "Filter by product"
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Items per page (default 20)"
// @Success      200        {object}  response.Response{data=object}
// @Failure      500        {object}  response.Response
// @Router       /api/stock/adjustments [get]
func (h *InventoryHandler) AdjustmentHistory(c *gin.Context) {
	p := pagination.Parse(c)

	adjustments, total, err := h.inventoryService.AdjustmentHistory(c.Request.Context(), c.Query("productId"), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paginated(adjustments, total, p.Page, p.Limit)))
}
