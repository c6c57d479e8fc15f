package handlers

import (
	"net/http"

	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

const (
	msgDishIDNotInt   = "Id should be an int."
	msgDishNotFound   = "Dish not found by Id."
	msgDishNameExists = "Dish with this name already exists."
)

// ListMenu returns every dish (public)
func (h *Handler) ListMenu(c *gin.Context) {
	menu, err := h.repo.GetMenu(c.Request.Context())
	if err != nil {
		h.fail(c, "list menu", err)
		return
	}
	c.JSON(http.StatusOK, menu)
}

// GetMenuItem returns a single dish (public)
func (h *Handler) GetMenuItem(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgDishIDNotInt})
		return
	}
	dish, err := h.repo.FindDishByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get dish", err)
		return
	}
	if dish == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgDishNotFound})
		return
	}
	c.JSON(http.StatusOK, dish)
}

// AddMenuItem adds a dish to the menu (admin only)
func (h *Handler) AddMenuItem(c *gin.Context) {
	var req models.DishInput
	if !bind(c, &req) {
		return
	}
	if !h.dishNameFree(c, req.Name, 0) {
		return
	}

	dish, err := h.repo.CreateDish(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "create dish", err)
		return
	}
	c.JSON(http.StatusOK, dish)
}

// UpdateMenuItem overwrites a dish (admin only)
func (h *Handler) UpdateMenuItem(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgDishIDNotInt})
		return
	}
	var req models.DishInput
	if !bind(c, &req) {
		return
	}
	if !h.dishNameFree(c, req.Name, id) {
		return
	}

	dish, err := h.repo.UpdateDishByID(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, "update dish", err)
		return
	}
	if dish == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgDishNotFound})
		return
	}
	c.JSON(http.StatusOK, dish)
}

// DeleteMenuItem removes a dish (admin only)
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgDishIDNotInt})
		return
	}
	if err := h.repo.DeleteDishByID(c.Request.Context(), id); err != nil {
		h.fail(c, "delete dish", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "successful"})
}

// dishNameFree reports whether name is unused by any dish other than self.
// On false the response has been written. The unique index still catches a
// concurrent insert of the same name.
func (h *Handler) dishNameFree(c *gin.Context, name string, self uint) bool {
	existing, err := h.repo.FindDishByName(c.Request.Context(), name)
	if err != nil {
		h.fail(c, "find dish by name", err)
		return false
	}
	if existing != nil && existing.ID != self {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgDishNameExists})
		return false
	}
	return true
}
