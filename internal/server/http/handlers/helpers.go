package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/foodshare/internal/domain/errors"
	"github.com/polkiloo/foodshare/internal/server/http/dto"
	"github.com/polkiloo/foodshare/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// bindOptionalJSON decodes the body into dst and accepts an empty body.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func badRequest(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed request body"})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrValidation), errors.Is(err, domainErrors.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrOrderStateMismatch),
		errors.Is(err, domainErrors.ErrDuplicateOrder),
		errors.Is(err, domainErrors.ErrPointsAlreadyAwarded),
		errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as JSON. Internal failures are attached to the
// context for the request logger and hidden from the client.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	resp := dto.ErrorResponse{Error: err.Error()}

	var ve *domainErrors.ValidationError
	if errors.As(err, &ve) {
		resp.Fields = ve.Fields
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		resp.Error = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, resp)
}

// respondList writes 204 for empty collections.
func respondList[T any](c *gin.Context, items []T) {
	if len(items) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, items)
}
