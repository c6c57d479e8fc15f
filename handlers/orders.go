package handlers

import (
	"net/http"

	"food-ordering-api/apperrors"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

const msgOrderNotFound = "Order not found"

// canActFor reports whether the caller is userID or an admin.
func canActFor(claims *services.Claims, userID uint) bool {
	return claims != nil && (claims.Role == models.RoleAdmin || claims.ID == userID)
}

// PlaceOrder creates an order for the caller. Admins may order for anyone.
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req models.CreateOrderInput
	if !bind(c, &req) {
		return
	}
	if !canActFor(middleware.ClaimsFrom(c), req.UserID) {
		h.fail(c, "authorize order", apperrors.Denied("Cannot create order for another user"))
		return
	}

	order, err := h.repo.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "create order", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetOrder returns one order to its owner or an admin
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID must be an integer"})
		return
	}

	order, err := h.repo.FindOrderByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "find order", err)
		return
	}
	if order == nil {
		h.fail(c, "find order", apperrors.NotFound(msgOrderNotFound))
		return
	}
	if !canActFor(middleware.ClaimsFrom(c), order.UserID) {
		h.fail(c, "authorize order", apperrors.Denied("Cannot view another user's order"))
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetUserOrders lists a user's orders to that user or an admin
func (h *Handler) GetUserOrders(c *gin.Context) {
	userID, ok := parseID(c.Param("userId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User ID must be an integer"})
		return
	}
	if !canActFor(middleware.ClaimsFrom(c), userID) {
		h.fail(c, "authorize order", apperrors.Denied("Cannot view another user's orders"))
		return
	}

	orders, err := h.repo.FindOrdersByUserID(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, "find user orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
