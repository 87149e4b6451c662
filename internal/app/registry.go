package app

import (
	"context"
	"errors"
	"time"

	"github.com/prasadp25/protecther-hrms-sub001/internal/auth"
	"github.com/prasadp25/protecther-hrms-sub001/internal/config"
	"github.com/prasadp25/protecther-hrms-sub001/internal/employee"
	"github.com/prasadp25/protecther-hrms-sub001/internal/messaging/kafka"
	"github.com/prasadp25/protecther-hrms-sub001/internal/middleware"
	"github.com/prasadp25/protecther-hrms-sub001/internal/rbac"
	"github.com/prasadp25/protecther-hrms-sub001/internal/salarystructure"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/counter"
	"github.com/prasadp25/protecther-hrms-sub001/internal/site"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errJWTSecretRequired = errors.New("JWT_SECRET is required when AUTH_ENABLED is true")

func registerModules(router *gin.Engine, cfg *config.Config, deps Deps, logger *zap.Logger) error {
	// --- Repositories ---
	counterRepo := counter.NewRepository(deps.GormDB)
	employeeRepo := employee.NewRepository(deps.GormDB)
	outboxRepo := kafka.NewOutboxRepository(deps.DB)
	salaryStructureRepo := salarystructure.NewRepository(deps.GormDB)
	siteRepo := site.NewRepository(deps.GormDB)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(deps.DB, employeeRepo, counterRepo, outboxRepo, deps.Redis, deps.Metrics, logger)
	salaryStructureService := salarystructure.NewService(deps.DB, salaryStructureRepo, deps.Metrics, logger)
	siteService := site.NewService(siteRepo, deps.Redis, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	salaryStructureHandler := salarystructure.NewHandler(salaryStructureService, logger)
	siteHandler := site.NewHandler(siteService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	protected := api.Group("")

	if cfg.Auth.Enabled {
		if cfg.Auth.JWTSecret == "" {
			return errJWTSecretRequired
		}
		enforcer, err := rbac.NewEnforcer()
		if err != nil {
			return err
		}

		tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
		authService := auth.NewService(auth.NewRepository(deps.GormDB), tokens, logger)
		authHandler := auth.NewHandler(authService, logger)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
			return err
		}

		auth.RegisterPublicRoutes(api, authHandler)
		protected.Use(middleware.Authenticate(tokens), middleware.Authorize(enforcer))
		auth.RegisterRoutes(protected, authHandler)
	} else {
		logger.Warn("authentication disabled, API routes are open")
	}

	employee.RegisterRoutes(protected, employeeHandler, deps.Redis)
	salarystructure.RegisterRoutes(protected, salaryStructureHandler, deps.Redis)
	site.RegisterRoutes(protected, siteHandler)
	return nil
}
