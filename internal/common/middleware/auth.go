package middleware

import (
	"net/http"
	"strings"

	"komakresan-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware
const (
	ContextUserID   = "userID"
	ContextUserType = "userType"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth validates the bearer access token and stores the caller's
// identity in the request context
func RequireAuth(maker *token.Maker) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header missing"})
			return
		}

		claims, err := maker.Verify(raw, token.TypeAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserType, claims.UserType)
		c.Next()
	}
}

// OptionalAuth stores the caller's identity when a valid access token is
// present but never rejects the request
func OptionalAuth(maker *token.Maker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := bearerToken(c); raw != "" {
			if claims, err := maker.Verify(raw, token.TypeAccess); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextUserType, claims.UserType)
			}
		}
		c.Next()
	}
}

// RequireUserType allows only callers whose user type is in the given set
func RequireUserType(maker *token.Maker, types ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}

	requireAuth := RequireAuth(maker)
	return func(c *gin.Context) {
		requireAuth(c)
		if c.IsAborted() {
			return
		}
		userType := c.GetString(ContextUserType)
		if _, ok := allowed[userType]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "you do not have permission to perform this action"})
		}
	}
}

// RejectAuthenticated blocks requests that already carry a valid access token.
// OTP flows are for anonymous clients; a logged-in caller must not restart them.
func RejectAuthenticated(maker *token.Maker) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.Next()
			return
		}
		if _, err := maker.Verify(raw, token.TypeAccess); err == nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "you are already logged in"})
			return
		}
		c.Next()
	}
}
