// auth.go - JWT authentication middleware
// This file implements authentication and authorization for the API
//
// Authentication Flow:
// 1. Extract JWT token from Authorization header
// 2. Validate token signature and expiration
// 3. Store user ID, email and role in context for handlers
//
// Authorization Flow (roles):
// 1. Authenticate as above
// 2. Compare the role from the token with the allowed roles
// 3. Allow/deny access based on role

package middleware // Declares the package name

import ( // Import required packages
	"net/http" // HTTP status codes (401, 403, etc.)
	"strings"  // String operations (for header parsing)

	"github.com/gin-gonic/gin" // Gin web framework (for middleware)

	"go-catalog-backend/auth"   // Token validation
	"go-catalog-backend/models" // Roles
)

// Context keys set by the auth middleware
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// TokenValidator - Anything that can turn a token into an identity
type TokenValidator interface {
	Validate(token string) (auth.Identity, error)
}

// AuthMiddleware - Returns a Gin middleware function for JWT authentication
func AuthMiddleware(v TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, v) {
			return // Request already aborted
		}
		c.Next() // Continue to next handler (authentication successful)
	}
}

// RoleMiddleware - Authenticates and then requires one of the given roles
// Role comes from the token, so no database lookup is needed
func RoleMiddleware(v TokenValidator, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, v) {
			return
		}
		role, _ := c.Get(ContextRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next() // Access granted
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient privileges"})
	}
}

// authenticate validates the bearer token and stores the identity on c
func authenticate(c *gin.Context, v TokenValidator) bool {
	header := c.GetHeader("Authorization")                     // Get Authorization header
	if header == "" || !strings.HasPrefix(header, "Bearer ") { // If missing or invalid format
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
		return false
	}

	tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")) // Remove 'Bearer ' prefix
	id, err := v.Validate(tokenStr)
	if err != nil { // If token is invalid or expired
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return false
	}

	c.Set(ContextUserID, id.UserID)
	c.Set(ContextEmail, id.Email)
	c.Set(ContextRole, id.Role)
	return true
}
