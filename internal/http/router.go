package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libris/internal/auth"
	"github.com/mrlokans/libris/internal/entities"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.HSTSMaxAge > 0 {
		router.Use(auth.StrictTransportSecurityMiddleware(cfg.HSTSMaxAge))
	}

	healthController := NewHealthController(cfg.Database, cfg.Version, cfg.HealthChecks)
	authController := NewAuthController(cfg.AuthService, cfg.Registration, cfg.AuditService)
	userController := NewUserController(cfg.Catalog, cfg.Access, cfg.Reading, cfg.AuditService)
	adminController := NewAdminController(cfg.Admin, cfg.AuditService)
	commentsController := NewCommentsController(cfg.Comments)

	mw := cfg.AuthMiddleware

	router.GET("/health", healthController.Status)
	router.GET("/ping", healthController.Ping)

	// Public routes
	router.POST("/auth/login", authController.Login)
	router.POST("/user/register", authController.Register)
	router.GET("/comments/:book_id", commentsController.Tree)

	router.POST("/comments/", mw.RequireAuth(), commentsController.Create)

	user := router.Group("/user", mw.RequireAuth())
	{
		user.GET("/dashboard", userController.Dashboard)
		user.GET("/summary", userController.Summary)
		user.GET("/books", userController.ListBooks)
		user.POST("/books", mw.RequireRole(entities.UserRoleCreator), userController.CreateBook)
		user.GET("/books/:book_id", userController.GetBook)
		user.PUT("/books/:book_id", userController.UpdateBook)
		user.POST("/books/:book_id/pay", userController.Pay)
		user.POST("/books/:book_id/start", userController.StartReading)
		user.POST("/books/:book_id/stop", userController.StopReading)
	}

	admin := router.Group("/admin", mw.RequireAuth(), mw.RequireRole(entities.UserRoleAdmin))
	{
		admin.GET("/summary", adminController.Summary)
		admin.GET("/users", adminController.Users)
		admin.GET("/books", adminController.Books)
		admin.GET("/audit", adminController.AuditEvents)
		admin.POST("/books/:book_id/approve", adminController.Approve)
		admin.POST("/books/:book_id/reject", adminController.Reject)
		admin.DELETE("/books/:book_id", adminController.Delete)
	}

	return router
}
