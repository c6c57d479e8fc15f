package handlers

import (
	"net/http"
	"strings"

	"food-ordering-api/middleware"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

// OrderStatuses lists the statuses an order may hold (public)
func (h *Handler) OrderStatuses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"initial":  statemachine.Initial,
		"statuses": statemachine.Describe(),
		"note":     "An admin may move an order to any status.",
	})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Food Ordering API",
	})
}

// Index is the landing page, personalised when the caller is signed in
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"Claims": middleware.ClaimsFrom(c)})
}

func (h *Handler) AdminPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin.html", gin.H{"Claims": middleware.ClaimsFrom(c)})
}

// NotFound answers unknown API paths with JSON and anything else with the
// not-found page.
func (h *Handler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	c.HTML(http.StatusNotFound, middleware.NotFoundTemplate, gin.H{"Path": c.Request.URL.Path})
}
