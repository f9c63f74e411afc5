package main

import (
	"context"

	"skincare/internal/bookings/events"
	"skincare/internal/bookings/form"
	bookinghandler "skincare/internal/bookings/handler"
	bookingservice "skincare/internal/bookings/service"
	"skincare/internal/bookings/session"
	"skincare/internal/bookings/validator"
	doctorhandler "skincare/internal/doctors/handler"
	"skincare/internal/doctors/repository"
	doctorservice "skincare/internal/doctors/service"
	"skincare/internal/integration/provider"
	integration "skincare/internal/integration/service"
	"skincare/pkg/app"
	"skincare/pkg/config"
	kafka_config "skincare/pkg/kafka/config"
	"skincare/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const ServiceName = "booking"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Booking service")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(registry)

	doctorRepo, doctorService := initDoctors(cfg)

	sessions := session.NewInMemoryStore(session.Config{
		TTL:             cfg.SessionTTL,
		CleanupInterval: cfg.SessionCleanupInterval,
		Metrics:         bookingMetrics,
		Log:             cfg.Log.WithComponent("sessions"),
	})

	publisher := initPublisher(cfg, bookingMetrics)

	bookingService := bookingservice.NewBookingService(
		doctorService,
		sessions,
		initFormOptions(cfg, registry, bookingMetrics),
		publisher,
		cfg.Log,
	)
	cfg.Log.Info("Booking service initialized", "integration_enabled", cfg.IntegrationEnabled)

	serverApp := app.NewApplication(cfg, registry)
	serverApp.AddReadinessCheck("doctors", func(ctx context.Context) error {
		_, err := doctorRepo.Count(ctx)
		return err
	})
	serverApp.OnShutdown("sessions", func() error {
		sessions.Stop()
		return nil
	})
	serverApp.OnShutdown("publisher", publisher.Close)
	serverApp.SetApp(
		doctorhandler.NewDoctorHandler(doctorService, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
	)
	serverApp.Run()
}

func initDoctors(cfg *config.Config) (repository.DoctorRepository, doctorservice.DoctorService) {
	repo, err := repository.NewInMemoryDoctorRepository(repository.DefaultDoctors())
	if err != nil {
		cfg.Log.Fatal("Failed to load doctor directory", "error", err)
	}
	return repo, doctorservice.NewDoctorService(repo, cfg.Log)
}

func initFormOptions(cfg *config.Config, reg prometheus.Registerer, m *metrics.BookingMetrics) form.Options {
	opts := form.Options{
		Validator:       validator.NewAppointmentValidator(cfg.Location(), cfg.Log),
		ErrorResetDelay: cfg.ErrorResetDelay,
		Metrics:         m,
		Log:             cfg.Log.WithComponent("form"),
	}
	if !cfg.IntegrationEnabled {
		return opts
	}

	calendar := provider.NewSimulatedProvider(provider.SimulatedConfigFrom(cfg), cfg.Log)
	opts.Integration = integration.NewIntegrationService(calendar, metrics.NewIntegrationMetrics(reg), cfg.Log)
	return opts
}

func initPublisher(cfg *config.Config, m *metrics.BookingMetrics) events.Publisher {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	publisher, err := events.NewPublisher(kafkaCfg, cfg.BookingEventsTopic, ServiceName, m, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize booking events publisher", "error", err)
	}
	return publisher
}
