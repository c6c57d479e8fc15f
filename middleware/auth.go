package middleware

import (
	"context"
	"net/http"
	"strings"

	"food-ordering-api/models"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

// Mode selects how Authorize answers a denied request.
type Mode int

const (
	// ModeAPI aborts with a JSON {message} body and 401 or 403.
	ModeAPI Mode = iota
	// ModeClient aborts by rendering the not-found page.
	ModeClient
	// ModeIgnore lets the request through without claims.
	ModeIgnore
)

const (
	DefaultCookieName = "authToken"
	NotFoundTemplate  = "notfound.html"

	msgNoToken      = "Access denied. No token provided."
	msgInvalidToken = "Access denied. Invalid or expired token."
	msgDenied       = "Access denied."
)

type TokenVerifier interface {
	VerifyToken(token string) *services.Claims
}

// CheckFunc grants access when it returns true. It may do I/O.
type CheckFunc func(c *gin.Context, claims *services.Claims) bool

type AuthorizeOptions struct {
	Roles      []models.Role
	Check      CheckFunc
	Mode       Mode
	CookieName string
}

type claimsKey struct{}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *services.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims attached by Authorize, or nil.
func ClaimsFromContext(ctx context.Context) *services.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*services.Claims)
	return claims
}

func ClaimsFrom(c *gin.Context) *services.Claims {
	return ClaimsFromContext(c.Request.Context())
}

// Authorize gates a route on a verified token. Access is granted when the
// token's role is in opts.Roles or opts.Check returns true; with neither
// configured every request is denied.
func Authorize(verifier TokenVerifier, opts AuthorizeOptions) gin.HandlerFunc {
	cookieName := opts.CookieName
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	roles := make(map[models.Role]struct{}, len(opts.Roles))
	for _, r := range opts.Roles {
		roles[r] = struct{}{}
	}

	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token == "" {
			deny(c, opts.Mode, http.StatusUnauthorized, msgNoToken)
			return
		}

		claims := verifier.VerifyToken(token)
		if claims == nil {
			deny(c, opts.Mode, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		authorized := false
		if len(roles) > 0 {
			_, authorized = roles[claims.Role]
		}
		if !authorized && opts.Check != nil {
			authorized = opts.Check(c, claims)
		}
		if !authorized {
			deny(c, opts.Mode, http.StatusForbidden, msgDenied)
			return
		}

		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

// extractToken prefers the Bearer header and falls back to the cookie.
func extractToken(c *gin.Context, cookieName string) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")); token != "" {
			return token
		}
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

func deny(c *gin.Context, mode Mode, status int, message string) {
	switch mode {
	case ModeIgnore:
		c.Next()
	case ModeClient:
		c.HTML(http.StatusNotFound, NotFoundTemplate, gin.H{"Path": c.Request.URL.Path})
		c.Abort()
	default:
		c.AbortWithStatusJSON(status, gin.H{"message": message})
	}
}

