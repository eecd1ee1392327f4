package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Neshhin/credit-approval-system/internal/application/usecase"
	"github.com/Neshhin/credit-approval-system/internal/domain/service"
	"github.com/Neshhin/credit-approval-system/internal/infrastructure/config"
	"github.com/Neshhin/credit-approval-system/internal/infrastructure/messaging"
	pgRepo "github.com/Neshhin/credit-approval-system/internal/infrastructure/persistence/postgres"
	"github.com/Neshhin/credit-approval-system/internal/infrastructure/scheduler"
	grpcPresentation "github.com/Neshhin/credit-approval-system/internal/presentation/grpc"
	"github.com/Neshhin/credit-approval-system/internal/presentation/rest"
	"github.com/Neshhin/credit-approval-system/pkg/auth"
	"github.com/Neshhin/credit-approval-system/pkg/kafka"
	"github.com/Neshhin/credit-approval-system/pkg/observability"
	"github.com/Neshhin/credit-approval-system/pkg/postgres"
)

func main() {
	logger := observability.InitLogger(observability.LogConfig{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})

	cfg := config.Load()
	logger.Info("starting credit approval service",
		"grpc_port", cfg.GRPCPort,
		"http_port", cfg.HTTPPort,
	)

	// --- Database -----------------------------------------------------------
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbCfg := postgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if cfg.MigrationsDir != "" {
		if err := postgres.RunMigrations(dbCfg.DSN(), cfg.MigrationsDir); err != nil {
			logger.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations applied")
	}

	// --- Infrastructure adapters -------------------------------------------
	customerRepo := pgRepo.NewCustomerRepo(pool)
	loanRepo := pgRepo.NewLoanRepo(pool)

	producer := kafka.NewProducer(kafka.Config{Brokers: cfg.Kafka.Brokers})
	defer producer.Close()
	publisher := messaging.NewKafkaEventPublisher(producer, cfg.Kafka.Topic, logger)

	scorer := service.NewCreditScoreCalculator()
	checker := service.NewEligibilityChecker(scorer)

	// --- Use cases ----------------------------------------------------------
	registerUC := usecase.NewRegisterCustomerUseCase(customerRepo, publisher)
	eligibilityUC := usecase.NewCheckEligibilityUseCase(customerRepo, loanRepo, checker)
	createLoanUC := usecase.NewCreateLoanUseCase(customerRepo, loanRepo, checker, publisher)
	viewLoanUC := usecase.NewViewLoanUseCase(loanRepo, customerRepo)
	viewLoansUC := usecase.NewViewCustomerLoansUseCase(customerRepo, loanRepo)

	// --- gRPC server --------------------------------------------------------
	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret: cfg.JWTSecret,
		Issuer: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("jwt configuration invalid", "error", err)
		os.Exit(1)
	}

	handler := grpcPresentation.NewCreditHandler(registerUC, eligibilityUC, createLoanUC, viewLoanUC, viewLoansUC)
	grpcServer := grpcPresentation.NewServer(handler, logger, jwtService)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			logger.Error("gRPC server error", "error", err)
			os.Exit(1)
		}
	}()

	// --- Loan expiry job ----------------------------------------------------
	expiryJob := scheduler.NewLoanExpiryJob(loanRepo, logger)
	if err := expiryJob.Start(); err != nil {
		logger.Error("failed to start loan expiry job", "error", err)
		os.Exit(1)
	}

	// --- HTTP health and metrics server -------------------------------------
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(pool, logger)
	healthHandler.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: mux,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful shutdown --------------------------------------------------
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig.String())

	expiryJob.Stop()
	grpcServer.GracefulStop()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	if err := meterProvider.Shutdown(ctx); err != nil {
		logger.Error("meter provider shutdown error", "error", err)
	}

	logger.Info("credit approval service stopped")
}
