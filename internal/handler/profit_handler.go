package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/middleware"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/service"
	"github.com/raihanuddin561/skyzonebd-sub004/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProfitHandler struct {
	profitService service.ProfitService
}

func NewProfitHandler(profitService service.ProfitService) *ProfitHandler {
	return &ProfitHandler{profitService: profitService}
}

func (h *ProfitHandler) RegisterRoutes(router *gin.RouterGroup) {
	pl := router.Group("/api/profit-loss", middleware.RequireRole(model.RoleAdmin, model.RoleManager))
	{
		pl.GET("", h.ProfitLoss)
		pl.GET("/export", h.Export)
	}
}

// ProfitLoss returns a profit and loss report
// @Summary      Profit and loss report
// @Description  type=monthly returns one month, type=trend returns all twelve months of the year, type=ytd returns January through the current month
// @Tags         reports
// @Security     BearerAuth
// @Produce      json
// @Param        type   query     string  false  "Report type: monthly, trend, or ytd (default monthly)"
// @Param        month  query     int     false  "Month 1-12 (default current month)"
// @Param        year   query     int     false  "Year (default current year)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      400    {object}  response.Response
// @Router       /api/profit-loss [get]
func (h *ProfitHandler) ProfitLoss(c *gin.Context) {
	now := time.Now().UTC()
	month, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	reportType := c.DefaultQuery("type", "monthly")

	if month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "month must be between 1 and 12"))
		return
	}

	ctx := c.Request.Context()
	switch reportType {
	case "monthly":
		summary, err := h.profitService.MonthlySummary(ctx, month, year)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
	case "trend":
		trend, err := h.profitService.Trend(ctx, year)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, trend))
	case "ytd":
		summary, err := h.profitService.YearToDate(ctx, year, now)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
	default:
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "type must be monthly, trend, or ytd"))
	}
}

// Export downloads a yearly P&L workbook
// @Summary      Export profit and loss
// @Description  Streams an XLSX workbook with one row per month plus a yearly total
// @Tags         reports
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        year  query  int  false  "Year (default current year)"
// @Success      200   {file}    file
// @Failure      500   {object}  response.Response
// @Router       /api/profit-loss/export [get]
func (h *ProfitHandler) Export(c *gin.Context) {
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().UTC().Year())))

	data, err := h.profitService.ExportProfitLoss(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("profit-loss-%d.xlsx", year)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
