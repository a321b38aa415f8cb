package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/foodshare/internal/domain/errors"
	pkgAuth "github.com/polkiloo/foodshare/internal/pkg/auth"
)

const (
	// UserIDContextKey is a gin context key for authenticated user identifier.
	UserIDContextKey = "userID"
	authCookieName   = "foodshare_token"
)

// TokenParser resolves a session token into a user identifier.
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

// StaffChecker verifies that a user may run staff operations.
type StaffChecker interface {
	RequireStaff(ctx context.Context, userID int64) error
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		userID, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(UserIDContextKey, userID)
		c.Next()
	}
}

// StaffRequired lets only admins and drivers through. It must run after AuthRequired.
func StaffRequired(checker StaffChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64(UserIDContextKey)
		if userID == 0 {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		err := checker.RequireStaff(c.Request.Context(), userID)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, domainErrors.ErrForbidden):
			c.AbortWithStatus(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrNotFound):
			// token outlived its account
			c.AbortWithStatus(http.StatusUnauthorized)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
