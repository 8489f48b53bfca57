package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"atelier/internal/notifier/service"
	requestevents "atelier/internal/requests/service"
	"atelier/pkg/config"
	"atelier/pkg/kafka"
	kafka_config "atelier/pkg/kafka/config"
	kafkamiddleware "atelier/pkg/kafka/middleware"
)

const (
	ServiceName   = "notifier"
	consumerGroup = "notifier"
)

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Notifier service")

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	notifier := service.NewNotifier(service.NewLogChannel(cfg.Log), cfg.Log)

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		requestevents.TopicBookingRequests,
		consumerGroup,
		requestevents.TopicBookingRequestsDLQ,
		notifier.HandleMessage,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafkamiddleware.LoggingConsumerMiddleware(cfg.Log))
	consumer.Use(kafkamiddleware.MetricsConsumerMiddleware())

	ctx, cancel := context.WithCancel(context.Background())

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Notifier stopped")
}
