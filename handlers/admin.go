package handlers

import (
	"net/http"

	"food-ordering-api/models"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListOrders returns every order, optionally filtered by ?status= (admin only)
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.repo.GetAllOrders(c.Request.Context())
	if err != nil {
		h.fail(c, "list orders", err)
		return
	}

	status := models.OrderStatus(c.Query("status"))
	if status == "" {
		c.JSON(http.StatusOK, orders)
		return
	}
	if !statemachine.IsValid(status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown order status"})
		return
	}
	filtered := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == status {
			filtered = append(filtered, o)
		}
	}
	c.JSON(http.StatusOK, filtered)
}

// UpdateOrderStatus sets any whitelisted status on an order (admin only)
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID must be an integer"})
		return
	}
	var req models.UpdateOrderStatusInput
	if !bind(c, &req) {
		return
	}

	order, err := h.repo.UpdateOrderStatusByID(c.Request.Context(), id, req.Status)
	if err != nil {
		h.fail(c, "update order status", err)
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": msgOrderNotFound})
		return
	}
	c.JSON(http.StatusOK, order)
}

// OrderHistory returns the status changes of an order (admin only)
func (h *Handler) OrderHistory(c *gin.Context) {
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
		c.JSON(http.StatusNotFound, gin.H{"message": msgOrderNotFound})
		return
	}

	history, err := h.repo.FindStatusHistory(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "order history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orderId": order.ID,
		"status":  order.Status,
		"history": history,
	})
}
