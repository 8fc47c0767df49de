package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Light-700/Nidhi-Rakshak/internal/application/usecase"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/port"
	"github.com/Light-700/Nidhi-Rakshak/internal/domain/service"
	"github.com/Light-700/Nidhi-Rakshak/internal/infrastructure/config"
	"github.com/Light-700/Nidhi-Rakshak/internal/infrastructure/memory"
	"github.com/Light-700/Nidhi-Rakshak/internal/infrastructure/messaging"
	"github.com/Light-700/Nidhi-Rakshak/internal/infrastructure/ml"
	postgresrepo "github.com/Light-700/Nidhi-Rakshak/internal/infrastructure/postgres"
	grpcpresentation "github.com/Light-700/Nidhi-Rakshak/internal/presentation/grpc"
	"github.com/Light-700/Nidhi-Rakshak/internal/presentation/rest"
	"github.com/Light-700/Nidhi-Rakshak/pkg/auth"
	"github.com/Light-700/Nidhi-Rakshak/pkg/kafka"
	"github.com/Light-700/Nidhi-Rakshak/pkg/observability"
	"github.com/Light-700/Nidhi-Rakshak/pkg/postgres"
)

const serviceName = "risk-profile-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Service: serviceName,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	logger.Info("starting risk-profile-service",
		slog.String("store_backend", cfg.StoreBackend),
		slog.String("environment", cfg.Environment),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Select the profile store backend.
	var repo port.ProfileRepository
	var pool *pgxpool.Pool
	readinessChecks := map[string]rest.ReadinessCheck{}

	switch cfg.StoreBackend {
	case config.StoreBackendPostgres:
		pool, err = postgres.NewPool(ctx, postgres.Config{URL: cfg.DatabaseURL})
		if err != nil {
			logger.Error("failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()

		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
			logger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("connected to database, migrations applied")

		repo = postgresrepo.NewProfileRepository(pool)
		readinessChecks["database"] = func(ctx context.Context) error {
			return postgres.HealthCheck(ctx, pool)
		}

	case config.StoreBackendMemory:
		logger.Warn("using in-memory profile store, profiles will not survive restarts")
		repo = memory.NewProfileRepository()
	}

	// Kafka producer for profile events.
	producer := kafka.NewProducer(kafka.Config{Brokers: []string{cfg.KafkaBroker}})
	defer producer.Close()
	eventPublisher := messaging.NewKafkaPublisher(producer, cfg.KafkaTopic, logger)

	// JWT validation for partner callers.
	jwtCfg := auth.JWTConfig{Issuer: "nidhi-rakshak"}
	if cfg.JWTPublicKey != "" {
		keyPEM, err := auth.LoadKeyFromFile(cfg.JWTPublicKey)
		if err != nil {
			logger.Error("failed to load JWT public key", slog.String("error", err.Error()))
			os.Exit(1)
		}
		jwtCfg.PublicKeyPEM = string(keyPEM)
	} else {
		jwtCfg.Secret = cfg.JWTSecret
	}
	jwtService, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		logger.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Metrics exporter.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: serviceName,
		Port:        cfg.MetricsPort,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", slog.String("error", err.Error()))
		os.Exit(1)
	}
	engineMetrics, err := observability.NewEngineMetrics(meterProvider, serviceName)
	if err != nil {
		logger.Error("failed to register metrics instruments", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Domain services.
	riskScorer := service.NewRiskScorer()
	validator := service.NewTransactionValidator()
	modelClient := ml.NewStubModelClient(logger)

	// Use cases.
	recordOutcomeUC := usecase.NewRecordOutcome(repo, eventPublisher, riskScorer, logger)
	assessTransactionUC := usecase.NewAssessTransaction(modelClient, recordOutcomeUC)
	getProfileUC := usecase.NewGetProfile(repo, logger)
	validateTransactionUC := usecase.NewValidateTransaction(repo, validator, logger)
	resetProfileUC := usecase.NewResetProfile(repo, logger)
	blacklistProfileUC := usecase.NewBlacklistProfile(repo, eventPublisher, logger)
	getStatsUC := usecase.NewGetStats(repo)

	// gRPC handler and server.
	grpcHandler := grpcpresentation.NewRiskProfileHandler(
		recordOutcomeUC,
		assessTransactionUC,
		getProfileUC,
		validateTransactionUC,
		resetProfileUC,
		blacklistProfileUC,
		getStatsUC,
		engineMetrics,
		logger,
	)
	grpcServer := grpcpresentation.NewServer(grpcHandler, cfg.GRPCAddress(), logger, jwtService)

	// HTTP health server.
	healthHandler := rest.NewHealthHandler(logger, readinessChecks)
	httpMux := http.NewServeMux()
	healthHandler.RegisterRoutes(httpMux)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      httpMux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Metrics server.
	metricsMux := http.NewServeMux()
	metricsMux.Handle("GET /metrics", metricsHandler)
	metricsServer := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler:     metricsMux,
		ReadTimeout: 5 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 3)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP health server starting", slog.String("address", cfg.HTTPAddress()))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", slog.Int("port", cfg.MetricsPort))
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("metrics server error: %w", err)
		}
	}()

	logger.Info("risk-profile-service started",
		slog.String("grpc_address", cfg.GRPCAddress()),
		slog.String("http_address", cfg.HTTPAddress()),
		slog.String("environment", cfg.Environment),
	)

	// Wait for shutdown signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-errCh:
		logger.Error("server error", slog.String("error", err.Error()))
	}

	// Graceful shutdown.
	logger.Info("shutting down risk-profile-service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	grpcServer.Stop()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", slog.String("error", err.Error()))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		logger.Error("meter provider shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("risk-profile-service stopped")
}
