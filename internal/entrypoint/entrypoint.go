package entrypoint

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/libris/internal/audit"
	"github.com/mrlokans/libris/internal/auth"
	"github.com/mrlokans/libris/internal/config"
	"github.com/mrlokans/libris/internal/database"
	auditrepo "github.com/mrlokans/libris/internal/database/audit"
	"github.com/mrlokans/libris/internal/database/books"
	"github.com/mrlokans/libris/internal/database/comments"
	"github.com/mrlokans/libris/internal/database/progress"
	"github.com/mrlokans/libris/internal/database/readingsessions"
	"github.com/mrlokans/libris/internal/database/users"
	http_controllers "github.com/mrlokans/libris/internal/http"
	"github.com/mrlokans/libris/internal/services"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Application is the wired server with everything that must be closed on exit.
type Application struct {
	Router  *gin.Engine
	closers []io.Closer
}

// Close releases the token store and database in reverse order of creation.
func (a *Application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for SIGINT or SIGTERM, then give in-flight requests the
	// configured timeout to finish.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

// Build wires repositories, services and the router from cfg.
func Build(ctx context.Context, cfg *config.Config, version string) (*Application, error) {
	app := &Application{}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, db)

	sqlDB, err := db.DB.DB()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	tokens, err := auth.NewTokenStore(ctx, cfg, sqlDB)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize token store: %w", err)
	}
	healthChecks := map[string]http_controllers.HealthCheck{}
	if redisStore, ok := tokens.(*auth.RedisTokenStore); ok {
		app.closers = append(app.closers, redisStore)
		healthChecks["token_store"] = redisStore.Ping
	}
	log.Printf("Token store: %s", tokenStoreName(cfg.TokenStore.Kind))

	passwords, err := auth.NewPasswordScheme(cfg.Auth)
	if err != nil {
		app.Close()
		return nil, err
	}
	log.Printf("Password mode: %s", passwordModeName(cfg.Auth.PasswordMode))

	bookRepo := books.NewRepository(db.DB)
	userRepo := users.NewRepository(db.DB)
	ledger := progress.NewRepository(db.DB)
	sessions := readingsessions.NewRepository(db.DB)
	commentRepo := comments.NewRepository(db.DB)

	authService := auth.NewService(userRepo, tokens, passwords, cfg.Auth)
	access := services.NewAccessService(bookRepo, ledger)

	app.Router = http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       db,
		Version:        version,
		HealthChecks:   healthChecks,
		HSTSMaxAge:     cfg.HTTP.HSTSMaxAge,
		AuthService:    authService,
		AuthMiddleware: auth.NewMiddleware(authService),
		AuditService:   audit.NewService(auditrepo.NewRepository(db.DB)),
		Catalog:        services.NewCatalogService(bookRepo, access),
		Access:         access,
		Reading:        services.NewReadingService(access, bookRepo, ledger, sessions, userRepo),
		Comments:       services.NewCommentService(commentRepo, bookRepo, userRepo, cfg.Comments.MaxDepth),
		Admin:          services.NewAdminService(bookRepo, userRepo),
		Registration:   services.NewRegistrationService(userRepo, passwords),
	})

	return app, nil
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Libris v%s", version)

	app, err := Build(context.Background(), cfg, version)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	Serve(app.Router, cfg, func(ctx context.Context) {
		app.Close()
	})
}

func tokenStoreName(kind config.TokenStoreKind) string {
	if kind == "" {
		return string(config.TokenStoreMemory)
	}
	return string(kind)
}

func passwordModeName(mode config.PasswordMode) string {
	if mode == "" {
		return string(config.PasswordModePlaintext)
	}
	return string(mode)
}
