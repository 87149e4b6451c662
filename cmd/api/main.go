package main

import (
	"github.com/prasadp25/protecther-hrms-sub001/internal/app"
	"github.com/prasadp25/protecther-hrms-sub001/internal/bootstrap"
	"github.com/prasadp25/protecther-hrms-sub001/internal/config"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	apperror.Init()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// build dependency + routes
	cleanup, err := app.BuildApp(r, cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	bootstrap.StartHTTPServer(r, cfg.HTTP, bootstrap.NewZapAuditLogger(logger))
}
