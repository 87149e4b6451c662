package main

import (
	"github.com/prasadp25/protecther-hrms-sub001/internal/app"
	"github.com/prasadp25/protecther-hrms-sub001/internal/bootstrap"
	"github.com/prasadp25/protecther-hrms-sub001/internal/config"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/apperror"

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

	if err := app.RunWorker(cfg, logger); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
