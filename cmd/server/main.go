package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"gqcars/internal/app"
	"gqcars/internal/config"
	"gqcars/internal/domain"
	"gqcars/internal/handler"
	internalRedis "gqcars/internal/redis"
	"gqcars/internal/repository/postgres"
	"gqcars/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize Redis stores.
	stateStore := internalRedis.NewStateStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)

	// Initialize repositories.
	bookingRepo := postgres.NewBookingRepository(db)
	contactRepo := postgres.NewContactRepository(db)
	paymentMethodRepo := postgres.NewPaymentMethodRepository(db)

	// Initialize services.
	events := service.NewEventBus()
	notificationService := service.NewNotificationService()
	bookingService := service.NewBookingService(bookingRepo, stateStore, lockStore, events, notificationService)
	assessmentService := service.NewAssessmentService(stateStore, events)
	emergencyService := service.NewEmergencyService(
		contactRepo,
		stateStore,
		service.NewMockLocationProvider(domain.Coordinates{Lat: 51.5074, Lng: -0.1278}),
		service.NewMockGeocoder("Central London"),
		service.NewLogMessagingGateway(),
		service.NewLogCallGateway(),
		events,
	)
	gateway := service.NewMockGateway()
	paymentService := service.NewPaymentService(paymentMethodRepo, gateway, notificationService)

	// Initialize handlers.
	bookingHandler := handler.NewBookingHandler(bookingService)
	assessmentHandler := handler.NewAssessmentHandler(assessmentService)
	emergencyHandler := handler.NewEmergencyHandler(emergencyService)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		BookingHandler:    bookingHandler,
		AssessmentHandler: assessmentHandler,
		EmergencyHandler:  emergencyHandler,
		PaymentHandler:    paymentHandler,
		RedisClient:       redisClient,
		NewRelicApp:       nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
