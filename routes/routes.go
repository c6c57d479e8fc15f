package routes

import (
	"food-ordering-api/handlers"
	"food-ordering-api/middleware"
	"food-ordering-api/models"
	"food-ordering-api/services"
	"food-ordering-api/views"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type Deps struct {
	Handler    *handlers.Handler
	Verifier   middleware.TokenVerifier
	CookieName string
}

// SetupRoutes registers the JSON API, the pages and the binding rules on r.
func SetupRoutes(r *gin.Engine, d Deps) error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := models.RegisterValidations(v); err != nil {
			return err
		}
	}
	tmpl, err := views.Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	h := d.Handler
	gate := func(mode middleware.Mode, roles ...models.Role) gin.HandlerFunc {
		return middleware.Authorize(d.Verifier, middleware.AuthorizeOptions{
			Roles:      roles,
			Mode:       mode,
			CookieName: d.CookieName,
		})
	}
	anyone := gate(middleware.ModeAPI, models.RoleUser, models.RoleAdmin)
	admin := gate(middleware.ModeAPI, models.RoleAdmin)

	r.GET("/health", h.Health)

	// ── Pages ──────────────────────────────────────────────────────
	r.GET("/", middleware.Authorize(d.Verifier, middleware.AuthorizeOptions{
		Mode:       middleware.ModeIgnore,
		CookieName: d.CookieName,
		Check:      func(*gin.Context, *services.Claims) bool { return true },
	}), h.Index)
	r.GET("/admin", gate(middleware.ModeClient, models.RoleAdmin), h.AdminPage)
	r.NoRoute(h.NotFound)

	api := r.Group("/api")

	// ── Auth ───────────────────────────────────────────────────────
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
	api.GET("/profile", anyone, h.Profile)

	// ── Menu ───────────────────────────────────────────────────────
	api.GET("/menu", h.ListMenu)
	api.GET("/menu/item/:id", h.GetMenuItem)
	api.POST("/menu/item", admin, h.AddMenuItem)
	api.PUT("/menu/item/:id", admin, h.UpdateMenuItem)
	api.DELETE("/menu/item/:id", admin, h.DeleteMenuItem)

	// ── Orders ─────────────────────────────────────────────────────
	api.GET("/orders/statuses", h.OrderStatuses)
	api.GET("/orders", admin, h.ListOrders)
	api.POST("/orders", anyone, h.PlaceOrder)
	api.GET("/orders/user/:userId", anyone, h.GetUserOrders)
	api.GET("/orders/:id", anyone, h.GetOrder)
	api.PUT("/orders/:id", admin, h.UpdateOrderStatus)
	api.GET("/orders/:id/history", admin, h.OrderHistory)

	return nil
}
