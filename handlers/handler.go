// Package handlers adapts HTTP requests to the repository and the auth
// service. Handlers do no business logic of their own.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"food-ordering-api/apperrors"
	"food-ordering-api/config"
	"food-ordering-api/models"
	"food-ordering-api/repository"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgSomethingWrong = "Something went wrong"

type Handler struct {
	repo *repository.Repository
	auth *services.AuthService
	cfg  config.AuthConfig
	log  *zap.Logger
}

func New(repo *repository.Repository, auth *services.AuthService, cfg config.AuthConfig, log *zap.Logger) *Handler {
	return &Handler{repo: repo, auth: auth, cfg: cfg, log: log}
}

// parseID accepts positive base-10 integers only.
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// bind decodes the JSON body into dst and answers 400 on failure.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		verr := models.ValidationError(err)
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Message, "errors": verr.Fields})
		return false
	}
	return true
}

// fail writes err using its kind. Server errors are logged and never leak
// detail to the caller.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperrors.KindServer || appErr.Kind == apperrors.KindUnknown {
		h.log.Error(op+" failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgSomethingWrong})
		return
	}
	if appErr.Kind == apperrors.KindValidation {
		c.JSON(http.StatusBadRequest, gin.H{"message": appErr.Message, "errors": appErr.Fields})
		return
	}
	c.JSON(statusOf(appErr.Kind), gin.H{"message": appErr.Message})
}

func statusOf(k apperrors.Kind) int {
	switch k {
	case apperrors.KindValidation, apperrors.KindConflict:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
