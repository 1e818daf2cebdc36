package handler

import (
	"net/http"

	"github.com/raihanuddin561/skyzonebd-sub004/internal/middleware"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/model"
	"github.com/raihanuddin561/skyzonebd-sub004/internal/service"
	"github.com/raihanuddin561/skyzonebd-sub004/pkg/response"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	cart := router.Group("/api/cart", middleware.RequireRole(model.RoleCustomer))
	{
		cart.GET("", h.GetCart)
		cart.POST("/items", h.SetItem)
		cart.DELETE("/items/:productId", h.RemoveItem)
		cart.DELETE("", h.ClearCart)
	}
}

// GetCart returns the caller's cart with a computed total
// @Summary      Get cart
// @Tags         cart
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=service.CartResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, cart))
}

// SetItem adds a product to the cart or updates its quantity
// @Summary      Set cart item
// @Description  Adds a product to the cart, or replaces the quantity if it is already there
// @Tags         cart
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CartItemRequest  true  "Cart Item Payload"
// @Success      200      {object}  response.Response{data=model.CartItem}
// @Failure      400      {object}  response.Response
// @Router       /api/cart/items [post]
func (h *CartHandler) SetItem(c *gin.Context) {
	var req service.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	item, err := h.cartService.SetItem(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, item))
}

// RemoveItem removes one product from the cart
// @Summary      Remove cart item
// @Tags         cart
// @Security     BearerAuth
// @Produce      json
// @Param        productId  path      string  true  "Product ID"
// @Success      200        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /api/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	if err := h.cartService.RemoveItem(c.Request.Context(), c.GetString("userID"), c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Item removed"}))
}

// ClearCart empties the caller's cart
// @Summary      Clear cart
// @Tags         cart
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cartService.ClearCart(c.Request.Context(), c.GetString("userID")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "Cart cleared"}))
}
