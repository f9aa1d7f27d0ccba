package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ecofinds/internal/service"
)

type detailResponse struct {
	Detail string `json:"detail"`
}

func detailBody(detail string) detailResponse {
	return detailResponse{Detail: detail}
}

// writeError maps service errors to a status and detail. Unmapped errors are
// logged and reported as a generic 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTokenInvalid):
		abortUnauthorized(c, "Invalid or expired token")
	case errors.Is(err, service.ErrIdentityNotFound):
		abortUnauthorized(c, "User not found")
	case errors.Is(err, service.ErrUnauthorized):
		abortUnauthorized(c, "Not authenticated")
	case errors.Is(err, service.ErrInvalidCredentials):
		abortUnauthorized(c, "Invalid credentials")
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, detailBody("Email already registered"))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, detailBody(err.Error()))
	case errors.Is(err, service.ErrCartEmpty):
		c.JSON(http.StatusBadRequest, detailBody("Cart is empty"))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, detailBody("Not enough permissions"))
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, detailBody("User not found"))
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, detailBody("Product not found"))
	case errors.Is(err, service.ErrCartItemNotFound):
		c.JSON(http.StatusNotFound, detailBody("Cart item not found"))
	case errors.Is(err, service.ErrCheckoutConflict):
		c.JSON(http.StatusConflict, detailBody("Checkout conflict, please retry"))
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.WithError(err).WithField("path", c.Request.URL.Path).Warn("request timed out")
		c.JSON(http.StatusServiceUnavailable, detailBody("Request timed out"))
	default:
		h.logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("unhandled error")
		c.JSON(http.StatusInternalServerError, detailBody("Internal server error"))
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, detailBody("Invalid request body: "+err.Error()))
}
