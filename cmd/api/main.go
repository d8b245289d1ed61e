package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wms-platform/slotting-service/pkg/cloudevents"
	"github.com/wms-platform/slotting-service/pkg/kafka"
	"github.com/wms-platform/slotting-service/pkg/logging"
	"github.com/wms-platform/slotting-service/pkg/metrics"
	"github.com/wms-platform/slotting-service/pkg/middleware"
	"github.com/wms-platform/slotting-service/pkg/mongodb"

	api "github.com/wms-platform/slotting-service/internal/api/http"
	"github.com/wms-platform/slotting-service/internal/application"
	kafkaAdapter "github.com/wms-platform/slotting-service/internal/infrastructure/kafka"
	mongoRepo "github.com/wms-platform/slotting-service/internal/infrastructure/mongodb"
)

const serviceName = "slotting-service"

func main() {
	// Setup logger
	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(getEnv("LOG_LEVEL", "info"))
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting slotting-service API")

	// Load configuration
	config := loadConfig()
	ctx := context.Background()

	// Initialize Prometheus metrics
	metricsConfig := metrics.DefaultConfig(serviceName)
	m := metrics.New(metricsConfig)
	logger.Info("Metrics initialized")

	// Initialize MongoDB
	mongoClient, err := mongodb.NewClient(ctx, config.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		os.Exit(1)
	}
	defer mongoClient.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(config.Kafka)
	defer kafkaProducer.Close()
	logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers)

	// Initialize CloudEvents factory
	eventFactory := cloudevents.NewEventFactory(cloudevents.SourceSlotting)

	// Initialize repository (implements domain.RunRepository)
	runRepo := mongoRepo.NewRunRepository(mongoClient.Database(), m, logger)

	// Initialize Event Publisher (implements domain.EventPublisher)
	eventPublisher := kafkaAdapter.NewEventPublisher(kafkaProducer, eventFactory, kafka.Topics.SlottingEvents, m, logger)
	logger.Info("Event publisher initialized", "topic", kafka.Topics.SlottingEvents)

	// Initialize application service
	slottingService := application.NewSlottingApplicationService(
		runRepo,
		eventPublisher,
		m,
		logger,
	)

	// Setup Gin router with middleware
	router := gin.New()

	// Apply standard middleware (recovery, request ID, correlation, logging, CORS, error handling)
	middlewareConfig := middleware.DefaultConfig(serviceName, logger.Logger)
	middleware.Setup(router, middlewareConfig)

	// Add metrics middleware
	router.Use(middleware.MetricsMiddleware(m))

	// Handle 404 and 405 errors
	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	// Health check endpoints
	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return mongoClient.HealthCheck(ctx)
	}))

	// Metrics endpoint
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	// Slotting API routes
	handlers := api.NewHandlers(slottingService, logger)
	api.RegisterRoutes(router, handlers)

	// Start server
	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server error")
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
}

// Config holds application configuration
type Config struct {
	ServerAddr   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MongoDB      *mongodb.Config
	Kafka        *kafka.Config
}

func loadConfig() *Config {
	mongoConfig := mongodb.DefaultConfig()
	mongoConfig.URI = getEnv("MONGODB_URI", mongoConfig.URI)
	mongoConfig.Database = getEnv("MONGODB_DATABASE", mongoConfig.Database)

	kafkaConfig := kafka.DefaultConfig()
	kafkaConfig.Brokers = []string{getEnv("KAFKA_BROKERS", "localhost:9092")}
	kafkaConfig.ClientID = serviceName
	if batch := parseInt(getEnv("KAFKA_BATCH_SIZE", "")); batch > 0 {
		kafkaConfig.BatchSize = batch
	}

	return &Config{
		ServerAddr:   getEnv("SERVER_ADDR", ":8010"),
		ReadTimeout:  parseDuration(getEnv("SERVER_READ_TIMEOUT", "10s")),
		WriteTimeout: parseDuration(getEnv("SERVER_WRITE_TIMEOUT", "30s")),
		MongoDB:      mongoConfig,
		Kafka:        kafkaConfig,
	}
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
