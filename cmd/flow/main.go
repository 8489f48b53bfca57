package main

import (
	availability "atelier/internal/availability/service"
	"atelier/internal/bookingflow/handler"
	"atelier/internal/bookingflow/service"
	"atelier/pkg/app"
	"atelier/pkg/config"
)

const ServiceName = "flow"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetServiceClients()

	cfg.Log.Info("Starting Booking Flow service")
	flowService, store := initServices(cfg)
	defer store.Stop()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewSessionHandler(flowService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.FlowService, *service.SessionStore) {
	store := service.NewSessionStore(cfg.SessionTTL)

	flowService := service.NewFlowService(service.FlowServiceParams{
		Store:      store,
		Fetcher:    service.NewHTTPAvailabilityFetcher(cfg.Client.Availability),
		Catalog:    service.NewHTTPCatalogReader(cfg.Client.Catalog),
		Submitter:  service.NewHTTPRequestSubmitter(cfg.Client.Requests),
		Resolver:   availability.NewResolver(cfg.SlotStrideMin),
		WindowDays: cfg.BookingWindowDays,
		Log:        cfg.Log,
	})

	cfg.Log.Info("Booking Flow service initialized",
		"session_ttl", cfg.SessionTTL,
		"booking_window_days", cfg.BookingWindowDays,
	)
	return flowService, store
}
