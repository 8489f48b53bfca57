package main

import (
	"atelier/internal/requests/handler"
	"atelier/internal/requests/repository"
	"atelier/internal/requests/service"
	"atelier/internal/requests/validator"
	"atelier/pkg/app"
	"atelier/pkg/config"
	"atelier/pkg/kafka"
	kafka_config "atelier/pkg/kafka/config"
	kafkamiddleware "atelier/pkg/kafka/middleware"
)

const ServiceName = "requests"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Requests service")

	producer := initProducer(cfg)
	defer func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}()

	requestService := initServices(cfg, producer)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewRequestHandler(requestService, cfg.Log))
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(
		kafkaCfg,
		service.TopicBookingRequests,
		service.TopicBookingRequestsDLQ,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(kafkamiddleware.MetricsProducerMiddleware())
	return producer
}

func initServices(cfg *config.Config, producer *kafka.Producer) service.RequestService {
	requestValidator := validator.NewRequestValidator(cfg.Log)
	requestRepo := repository.NewMongoRequestRepository(cfg)
	publisher := service.NewKafkaEventPublisher(producer, ServiceName, cfg.Log)
	requestService := service.NewRequestService(
		requestRepo,
		requestValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Requests service initialized", "database", cfg.MongoDatabaseName)
	return requestService
}
