package app

import (
	"context"
	"errors"

	"github.com/prasadp25/protecther-hrms-sub001/internal/bootstrap"
	"github.com/prasadp25/protecther-hrms-sub001/internal/config"
	"github.com/prasadp25/protecther-hrms-sub001/internal/events"
	"github.com/prasadp25/protecther-hrms-sub001/internal/messaging/kafka/consumer"
	"github.com/prasadp25/protecther-hrms-sub001/internal/metrics"
	"github.com/prasadp25/protecther-hrms-sub001/internal/salarystructure"
	"github.com/prasadp25/protecther-hrms-sub001/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var errKafkaBrokerRequired = errors.New("KAFKA_BROKER is required")

// RunConsumer applies employee lifecycle events to salary structures until
// SIGINT/SIGTERM.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.Kafka.Broker == "" {
		return errKafkaBrokerRequired
	}

	reg := newRegistry()
	m := metrics.NewMetrics(reg)
	metricsServer := serveMetrics(cfg.Kafka.MetricsAddr, reg, log)

	salaryStructureRepo := salarystructure.NewRepository(gormDB)
	salaryStructureService := salarystructure.NewService(sqlDB, salaryStructureRepo, m, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.EmployeeLifecycleTopic,
		GroupID:        cfg.Kafka.ConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, reader, salaryStructureService, logger)

	sig := bootstrap.WaitForSignal()
	log.Info("consumer shutting down", zap.String("signal", sig))
	cancel()
	shutdownMetrics(metricsServer, log)

	return nil
}
