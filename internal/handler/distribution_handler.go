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

type DistributionHandler struct {
	distributionService service.DistributionService
}

func NewDistributionHandler(distributionService service.DistributionService) *DistributionHandler {
	return &DistributionHandler{distributionService: distributionService}
}

func (h *DistributionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/profits", middleware.RequireRole(model.RoleAdmin), h.Distribute)

	payouts := router.Group("/api/payouts", middleware.RequireRole(model.RoleAdmin, model.RoleManager))
	{
		payouts.GET("", h.ListDistributions)
		payouts.GET("/:id", h.GetDistribution)
		payouts.PATCH("/:id", middleware.RequireRole(model.RoleAdmin), h.UpdateStatus)
		payouts.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteDistribution)
	}
}

// Distribute allocates period profit across active partners
// @Summary      Distribute profit
// @Description  Computes net profit for the period and creates a PENDING payout per active partner. Re-running an overlapping period is rejected.
// @Tags         payouts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.DistributeRequest  true  "Distribution Payload"
// @Success      201      {object}  response.Response{data=[]model.ProfitDistribution}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/profits [post]
func (h *DistributionHandler) Distribute(c *gin.Context) {
	var req service.DistributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	distributions, err := h.distributionService.Distribute(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, distributions))
}

// ListDistributions returns paginated payouts
// @Summary      List payouts
// @Tags         payouts
// @Security     BearerAuth
// @Produce      json
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Items per page (default 20)"
// @Param        partnerId  query     string  false  "Filter by partner"
// @Param        status     query     string  false  "Filter by payout status"
// @Success      200        {object}  response.Response{data=object}
// @Failure      500        {object}  response.Response
// @Router       /api/payouts [get]
func (h *DistributionHandler) ListDistributions(c *gin.Context) {
	p := pagination.Parse(c)

	distributions, total, err := h.distributionService.List(c.Request.Context(), p.Page, p.Limit, c.Query("partnerId"), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paginated(distributions, total, p.Page, p.Limit)))
}

// GetDistribution returns one payout by ID
// @Summary      Get payout
// @Tags         payouts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Payout ID"
// @Success      200  {object}  response.Response{data=model.ProfitDistribution}
// @Failure      404  {object}  response.Response
// @Router       /api/payouts/{id} [get]
func (h *DistributionHandler) GetDistribution(c *gin.Context) {
	dist, err := h.distributionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dist))
}

// UpdateStatus moves a payout through its approval lifecycle
// @Summary      Update payout status
// @Description  PENDING payouts may be APPROVED or REJECTED; APPROVED payouts may be PAID. PAID is terminal.
// @Tags         payouts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                             true  "Payout ID"
// @Param        payload  body      service.DistributionStatusRequest  true  "Status Payload"
// @Success      200      {object}  response.Response{data=model.ProfitDistribution}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/payouts/{id} [patch]
func (h *DistributionHandler) UpdateStatus(c *gin.Context) {
	var req service.DistributionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	dist, err := h.distributionService.UpdateStatus(c.Request.Context(), c.Param("id"), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dist))
}

// DeleteDistribution removes a payout record
// @Summary      Delete payout
// @Description  Deletes a payout that has not been paid. PAID payouts are undeletable.
// @Tags         payouts
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Payout ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/payouts/{id} [delete]
func (h *DistributionHandler) DeleteDistribution(c *gin.Context) {
	if err := h.distributionService.Delete(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Payout deleted"}))
}
