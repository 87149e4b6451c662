package app

import (
	"context"

	"github.com/prasadp25/protecther-hrms-sub001/internal/bootstrap"
	"github.com/prasadp25/protecther-hrms-sub001/internal/config"
	"github.com/prasadp25/protecther-hrms-sub001/internal/messaging/kafka"
	"github.com/prasadp25/protecther-hrms-sub001/internal/messaging/kafka/producer"
	"github.com/prasadp25/protecther-hrms-sub001/internal/metrics"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays outbox rows to Kafka until SIGINT/SIGTERM.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka, logger)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	reg := newRegistry()
	m := metrics.NewMetrics(reg)
	metricsServer := serveMetrics(cfg.Kafka.MetricsAddr, reg, log)

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, m, logger, cfg.Kafka.PollInterval)

	sig := bootstrap.WaitForSignal()
	log.Info("worker shutting down", zap.String("signal", sig))
	cancel()
	shutdownMetrics(metricsServer, log)

	return nil
}
