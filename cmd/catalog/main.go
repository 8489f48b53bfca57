package main

import (
	"atelier/internal/catalog/handler"
	"atelier/internal/catalog/repository"
	"atelier/internal/catalog/service"
	"atelier/internal/catalog/validator"
	"atelier/pkg/app"
	"atelier/pkg/config"
)

const ServiceName = "catalog"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Catalog service")
	catalogService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewCatalogHandler(catalogService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.CatalogService {
	offeringValidator := validator.NewOfferingValidator(cfg.Log)
	offeringRepo := repository.NewMongoOfferingRepository(cfg)
	catalogService := service.NewCatalogService(
		offeringRepo,
		offeringValidator,
		cfg,
	)

	cfg.Log.Info("Catalog service initialized", "database", cfg.MongoDatabaseName)
	return catalogService
}
