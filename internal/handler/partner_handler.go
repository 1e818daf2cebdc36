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

type PartnerHandler struct {
	partnerService service.PartnerService
}

func NewPartnerHandler(partnerService service.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

func (h *PartnerHandler) RegisterRoutes(router *gin.RouterGroup) {
	partners := router.Group("/api/partners", middleware.RequireRole(model.RoleAdmin))
	{
		partners.POST("", h.CreatePartner)
		partners.GET("", h.ListPartners)
		partners.GET("/:id", h.GetPartner)
		partners.PUT("/:id", h.UpdatePartner)
		partners.DELETE("/:id", h.DeactivatePartner)
	}
}

// CreatePartner registers a profit-sharing partner
// @Summary      Create partner
// @Description  Registers a partner with a profit share percentage. Exceeding a combined 100% requires an explicit override and returns a warning.
// @Tags         partners
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreatePartnerRequest  true  "Create Partner Payload"
// @Success      201      {object}  response.Response{data=model.Partner}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/partners [post]
func (h *PartnerHandler) CreatePartner(c *gin.Context) {
	var req service.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.partnerService.CreatePartner(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	if result.Warning != "" {
		c.JSON(http.StatusCreated, response.SuccessWithWarning(http.StatusCreated, result.Partner, result.Warning))
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result.Partner))
}

// ListPartners returns paginated partners
// @Summary      List partners
// @Tags         partners
// @Security     BearerAuth
// @Produce      json
// @Param        page    query     int   false  "Page number (default 1)"
// @Param        limit   query     int   false  "Items per page (default 20)"
// @Param        active  query     bool  false  "Only active partners"
// @Success      200     {object}  response.Response{data=object}
// @Failure      500     {object}  response.Response
// @Router       /api/partners [get]
func (h *PartnerHandler) ListPartners(c *gin.Context) {
	p := pagination.Parse(c)
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active", "false"))

	partners, total, err := h.partnerService.ListPartners(c.Request.Context(), p.Page, p.Limit, activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Paginated(partners, total, p.Page, p.Limit)))
}

// GetPartner returns one partner by ID
// @Summary      Get partner
// @Tags         partners
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Partner ID"
// @Success      200  {object}  response.Response{data=model.Partner}
// @Failure      404  {object}  response.Response
// @Router       /api/partners/{id} [get]
func (h *PartnerHandler) GetPartner(c *gin.Context) {
	partner, err := h.partnerService.GetPartner(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, partner))
}

// UpdatePartner updates partner details or share percentage
// @Summary      Update partner
// @Tags         partners
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Partner ID"
// @Param        payload  body      service.UpdatePartnerRequest  true  "Update Partner Payload"
// @Success      200      {object}  response.Response{data=model.Partner}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/partners/{id} [put]
func (h *PartnerHandler) UpdatePartner(c *gin.Context) {
	var req service.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.partnerService.UpdatePartner(c.Request.Context(), c.Param("id"), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	if result.Warning != "" {
		c.JSON(http.StatusOK, response.SuccessWithWarning(http.StatusOK, result.Partner, result.Warning))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, result.Partner))
}

// DeactivatePartner soft deactivates a partner
// @Summary      Deactivate partner
// @Description  Marks the partner inactive. Partners with distribution history are never hard deleted.
// @Tags         partners
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Partner ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/partners/{id} [delete]
func (h *PartnerHandler) DeactivatePartner(c *gin.Context) {
	if err := h.partnerService.DeactivatePartner(c.Request.Context(), c.Param("id"), c.GetString("userID")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Partner deactivated"}))
}
