package handlers

import (
	"errors"
	"net/http"

	"food-ordering-api/apperrors"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Register creates a user account and signs them in
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterInput
	if !h.bindAuth(c, &req) {
		return
	}

	res, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		h.authFailed(c, "register", http.StatusBadRequest, err)
		return
	}

	h.setAuthCookie(c, res.Token)
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully.",
		"user":    res.User,
		"token":   res.Token,
	})
}

// Login authenticates a user and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginInput
	if !h.bindAuth(c, &req) {
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.authFailed(c, "login", http.StatusUnauthorized, err)
		return
	}

	h.setAuthCookie(c, res.Token)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful.",
		"user":    res.User,
		"token":   res.Token,
	})
}

// Logout clears the auth cookie. The token itself stays valid until it expires.
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookieName(), "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}

// Profile returns the authenticated user
func (h *Handler) Profile(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	user, err := h.repo.FindUserByID(c.Request.Context(), claims.ID)
	if err != nil {
		h.fail(c, "profile", err)
		return
	}
	if user == nil {
		h.fail(c, "profile", apperrors.NotFound("User not found"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.Public()})
}

func (h *Handler) bindAuth(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"type":    apperrors.AuthValidation,
			"message": "Invalid request data",
			"errors":  models.FieldErrors(err),
		})
		return false
	}
	return true
}

// authFailed answers with {type, message}. Validation failures are always 400.
func (h *Handler) authFailed(c *gin.Context, op string, status int, err error) {
	t := apperrors.AuthTypeOf(err)
	switch t {
	case apperrors.AuthValidation:
		body := gin.H{"type": t, "message": "Invalid request data"}
		var authErr *apperrors.AuthError
		if errors.As(err, &authErr) && authErr.Fields != nil {
			body["errors"] = authErr.Fields
		}
		c.JSON(http.StatusBadRequest, body)
		return
	case apperrors.AuthServer, apperrors.AuthUnexpected:
		h.log.Error(op+" failed", zap.String("type", string(t)), zap.Error(err))
	default:
		h.log.Info(op+" rejected", zap.String("type", string(t)))
	}
	c.JSON(status, gin.H{"type": t, "message": string(t)})
}

func (h *Handler) setAuthCookie(c *gin.Context, token string) {
	maxAge := int(h.auth.Tokens().TTL().Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookieName(), token, maxAge, "/", "", false, true)
}

func (h *Handler) cookieName() string {
	if h.cfg.CookieName == "" {
		return middleware.DefaultCookieName
	}
	return h.cfg.CookieName
}
