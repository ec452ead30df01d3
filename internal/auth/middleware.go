package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libris/internal/entities"
)

// ContextKeyIdentity holds the *Identity of an authenticated request.
const ContextKeyIdentity = "auth_identity"

// Middleware guards routes with bearer-token authentication.
type Middleware struct {
	service *Service
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service) *Middleware {
	return &Middleware{service: service}
}

// RequireAuth resolves the bearer token and stores the caller's identity.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.service.Resolve(c.Request.Context(), bearerToken(c))
		switch {
		case err == nil:
			c.Set(ContextKeyIdentity, identity)
			c.Next()
		case errors.Is(err, ErrUnauthenticated):
			abortUnauthorized(c, "please register/login to view")
		case errors.Is(err, ErrAccountNotFound):
			abortUnauthorized(c, "user not found")
		default:
			log.Printf("Failed to resolve bearer token: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "internal server error",
				"code":  "server_error",
			})
		}
	}
}

// RequireRole rejects callers whose role is not exactly role.
// It must run after RequireAuth.
func (m *Middleware) RequireRole(role entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetIdentity(c)
		if identity == nil {
			abortUnauthorized(c, "authentication required")
			return
		}
		if identity.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "only " + string(role) + " can access",
				"code":  "forbidden",
			})
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
		"code":  "unauthenticated",
	})
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetIdentity retrieves the authenticated caller from the context.
// Returns nil when RequireAuth did not run.
func GetIdentity(c *gin.Context) *Identity {
	if v, exists := c.Get(ContextKeyIdentity); exists {
		if identity, ok := v.(*Identity); ok {
			return identity
		}
	}
	return nil
}
