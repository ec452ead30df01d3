package http

import (
	"github.com/mrlokans/libris/internal/audit"
	"github.com/mrlokans/libris/internal/auth"
	"github.com/mrlokans/libris/internal/database"
	"github.com/mrlokans/libris/internal/services"
)

// RouterConfig holds all dependencies needed to create the HTTP router.
type RouterConfig struct {
	Database     *database.Database
	Version      string
	HealthChecks map[string]HealthCheck
	// HSTSMaxAge enables Strict-Transport-Security when positive.
	HSTSMaxAge int

	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	AuditService   *audit.Service

	Catalog      *services.CatalogService
	Access       *services.AccessService
	Reading      *services.ReadingService
	Comments     *services.CommentService
	Admin        *services.AdminService
	Registration *services.RegistrationService
}
