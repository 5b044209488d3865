package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	tenantIDKey = contextKey("tenantID")
	userIDKey   = contextKey("userID")
)

// Header names under which the upstream gateway forwards the authenticated
// tenant and user identity. Authentication itself happens outside this
// service; we only carry the identities through.
const (
	TenantIDHeader = "X-Tenant-ID"
	UserIDHeader   = "X-User-ID"
)

// TenantContextMiddleware extracts the tenant and acting-user identifiers
// from the gateway headers and stores them in the request context. Requests
// without both headers are rejected: every ledger operation is tenant-scoped.
func TenantContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(TenantIDHeader)
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing tenant identity"})
			return
		}
		userID := c.GetHeader(UserIDHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), tenantIDKey, tenantID)
		ctx = context.WithValue(ctx, userIDKey, userID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetTenantIDFromContext retrieves the tenant ID from the Gin context.
// It returns the tenant ID and a boolean indicating if it was found.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(tenantIDKey)
	if val == nil {
		return "", false
	}
	tenantID, ok := val.(string)
	return tenantID, ok && tenantID != ""
}

// GetUserIDFromContext retrieves the acting-user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	val := c.Request.Context().Value(userIDKey)
	if val == nil {
		return "", false
	}
	userID, ok := val.(string)
	return userID, ok && userID != ""
}
