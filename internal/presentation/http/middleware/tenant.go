package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	infraRepo "github.com/salonkita/salonkita-api/internal/infrastructure/repository"
	"github.com/salonkita/salonkita-api/internal/presentation/http/dto/response"
)

// TenantMiddleware scopes the request to the tenant carried in the JWT
// claims. Every user belongs to exactly one tenant, so the claim is the
// source of truth; there is no cross-tenant access to validate.
// Must run after AuthMiddleware.
func TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsTenantID, exists := c.Get("claims_tenant_id")
		if !exists {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		tenantID, ok := claimsTenantID.(uuid.UUID)
		if !ok || tenantID == uuid.Nil {
			response.BadRequest(c, "Invalid tenant context")
			c.Abort()
			return
		}

		// Set tenant ID in Gin context (for middleware/handlers)
		c.Set("tenant_id", tenantID)

		// Also set tenant ID in request context (for services/repositories)
		ctx := infraRepo.WithTenant(c.Request.Context(), tenantID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetTenantID retrieves the tenant ID from gin context
func GetTenantID(c *gin.Context) uuid.UUID {
	tenantID, exists := c.Get("tenant_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := tenantID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
