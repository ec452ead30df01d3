package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/libris/internal/config"
	"github.com/mrlokans/libris/internal/entities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupMiddleware(t *testing.T) (*Middleware, *Service) {
	t.Helper()
	svc, _ := setupService(t, config.Auth{})
	return NewMiddleware(svc), svc
}

func newGuardedRouter(m *Middleware, handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	chain := append([]gin.HandlerFunc{m.RequireAuth()}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		identity := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"username": identity.Username, "role": identity.Role})
	})
	router.GET("/test", chain...)
	return router
}

func issue(t *testing.T, svc *Service, username string, role entities.UserRole) string {
	t.Helper()
	token, err := svc.IssueToken(context.Background(), &Identity{Username: username, Role: role})
	require.NoError(t, err)
	return token
}

func TestMiddleware_RequireAuth(t *testing.T) {
	m, svc := setupMiddleware(t)
	router := newGuardedRouter(m)
	valid := issue(t, svc, "user", entities.UserRoleUser)
	ghost := issue(t, svc, "ghost", entities.UserRoleUser)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
		{"no header", "", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"basic auth", "Basic " + valid, http.StatusUnauthorized},
		{"missing token part", "Bearer", http.StatusUnauthorized},
		{"vanished account", "Bearer " + ghost, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))

				var body map[string]string
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, "unauthenticated", body["code"])
			}
		})
	}
}

func TestMiddleware_RequireRole(t *testing.T) {
	m, svc := setupMiddleware(t)
	router := newGuardedRouter(m, m.RequireRole(entities.UserRoleCreator))

	tests := []struct {
		username   string
		role       entities.UserRole
		wantStatus int
	}{
		{"creator", entities.UserRoleCreator, http.StatusOK},
		// No role hierarchy: admin is not a creator.
		{"admin", entities.UserRoleAdmin, http.StatusForbidden},
		{"user", entities.UserRoleUser, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Authorization", "Bearer "+issue(t, svc, tt.username, tt.role))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestMiddleware_RequireRole_WithoutAuth(t *testing.T) {
	m, _ := setupMiddleware(t)
	router := gin.New()
	router.GET("/test", m.RequireRole(entities.UserRoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetIdentity_NotSet(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetIdentity(c))
}
