package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"greenlens/internal/service"
)

const (
	ctxUserID = "auth_user_id"
	ctxEmail  = "auth_email"
	ctxRole   = "auth_role"
)

// AuthMiddleware validates the Bearer token and populates the request
// context with the authenticated user's identity.
func AuthMiddleware(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "authorization header must be of form 'Bearer <token>'")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, string(claims.Role))
		c.Next()
	}
}

// RequireRole aborts the request with 403 unless the authenticated
// user has one of the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   gin.H{"code": "FORBIDDEN", "message": "insufficient role"},
		})
	}
}

// GetUserID returns the authenticated user's ID from the context.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	raw, ok := c.Get(ctxUserID)
	if !ok {
		return uuid.Nil, errors.New("middleware.GetUserID: no user in context")
	}
	switch v := raw.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		return uuid.Parse(v)
	default:
		return uuid.Nil, errors.New("middleware.GetUserID: unexpected user id type")
	}
}

// GetRole returns the authenticated user's role, or empty string.
func GetRole(c *gin.Context) string {
	return c.GetString(ctxRole)
}

// GetEmail returns the authenticated user's email, or empty string.
func GetEmail(c *gin.Context) string {
	return c.GetString(ctxEmail)
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   gin.H{"code": "UNAUTHORIZED", "message": msg},
	})
}
