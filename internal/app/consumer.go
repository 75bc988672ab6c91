package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-coverage/internal/bootstrap"
	"go-coverage/internal/config"
	"go-coverage/internal/events"
	"go-coverage/internal/i18n"
	"go-coverage/internal/messaging/kafka"
	"go-coverage/internal/messaging/kafka/consumer"
	"go-coverage/internal/notifier"
	"go-coverage/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const consumerGroupPrefix = "go-coverage-"

func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, 5)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	if err := i18n.Init(cfg.DefaultLocale); err != nil {
		return err
	}

	outboxRepo := kafka.NewOutboxRepository(gormDB)
	gateway := notifier.New(cfg.Notifier, logger)
	auditLogger := bootstrap.NewStdoutAuditLogger(logger)

	retryReader := newReader(cfg.KafkaBroker, events.NotificationRetryTopic, "notification-retry")
	defer retryReader.Close()

	lifecycleReader := newReader(cfg.KafkaBroker, events.LeaveLifecycleTopic, "leave-audit")
	defer lifecycleReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeNotificationRetries(ctx, retryReader, gateway, outboxRepo, logger)
	go consumer.ConsumeLeaveLifecycle(ctx, lifecycleReader, auditLogger, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}

func newReader(broker, topic, group string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        consumerGroupPrefix + group,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}
