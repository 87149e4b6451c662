package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/prasadp25/protecther-hrms-sub001/internal/config"
	"github.com/prasadp25/protecther-hrms-sub001/internal/metrics"
	"github.com/prasadp25/protecther-hrms-sub001/internal/middleware"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/apperror"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/connection"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the shared infrastructure handles of the API process.
type Deps struct {
	DB       *sql.DB
	GormDB   *gorm.DB
	Redis    *redis.Client
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
}

// BuildApp connects the infrastructure and registers every module on
// router. The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (func(), error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := migrate(ctx, gormDB, logger)
		cancel()
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis, logger)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	reg := newRegistry()
	deps := Deps{
		DB:       sqlDB,
		GormDB:   gormDB,
		Redis:    rdb,
		Registry: reg,
		Metrics:  metrics.NewMetrics(reg),
	}

	if err := NewRouter(router, cfg, deps, logger); err != nil {
		rdb.Close()
		sqlDB.Close()
		return nil, err
	}

	cleanup := func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("close redis failed", zap.Error(err))
		}
		if err := sqlDB.Close(); err != nil {
			logger.Warn("close database failed", zap.Error(err))
		}
	}
	return cleanup, nil
}

// NewRouter installs global middleware, infrastructure endpoints and the
// API modules.
func NewRouter(router *gin.Engine, cfg *config.Config, deps Deps, logger *zap.Logger) error {
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		deps.Metrics.Middleware(),
	)

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})
	router.NoRoute(func(c *gin.Context) {
		response.Error(c, apperror.ErrNotFound.HTTPStatus, apperror.ErrNotFound.Code, apperror.ErrNotFound.Message, nil)
	})
	if deps.Registry != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(deps.Registry)))
	}
	if cfg.HTTP.UploadsDir != "" {
		router.Static("/uploads", cfg.HTTP.UploadsDir)
	}

	return registerModules(router, cfg, deps, logger)
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
