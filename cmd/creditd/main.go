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

	"github.com/redis/go-redis/v9"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/usecase"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/infrastructure/cache"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/infrastructure/config"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/infrastructure/messaging"
	pgRepo "github.com/mfrancoh5-ui/gestor-creditos-backend/internal/infrastructure/persistence/postgres"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/presentation/rest"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/pkg/auth"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/pkg/observability"
	pkgpostgres "github.com/mfrancoh5-ui/gestor-creditos-backend/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting gestor-creditos", "http_port", cfg.HTTPPort)

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Warn("failed to initialize metrics, continuing without", "error", err)
		metricsHandler = nil
	} else {
		defer func() { _ = meterProvider.Shutdown(context.Background()) }()
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if migErr := pkgpostgres.RunMigrations(pgCfg.DSN(), "file://migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Infrastructure adapters.
	clientRepo := pgRepo.NewClientRepo(pool)
	loanRepo := pgRepo.NewLoanRepo(pool)
	installmentRepo := pgRepo.NewInstallmentRepo(pool)
	paymentRepo := pgRepo.NewPaymentRepo(pool)
	userRepo := pgRepo.NewUserRepo(pool)
	reportingRepo := pgRepo.NewReportingRepo(pool)
	uow := pgRepo.NewUnitOfWork(pool)

	publisher := messaging.NewKafkaEventPublisher(cfg.Kafka.Brokers, logger)
	defer publisher.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	defer redisClient.Close()
	kpiCache := cache.NewRedisKPICache(redisClient, logger)

	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		Expiration: cfg.JWT.Expiration,
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// Use cases.
	issueLoanUC := usecase.NewIssueLoanUseCase(uow, publisher)
	registerPaymentUC := usecase.NewRegisterPaymentUseCase(uow, publisher)
	cancelLoanUC := usecase.NewCancelLoanUseCase(uow, publisher)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo, clientRepo, paymentRepo)
	listLoansUC := usecase.NewListLoansUseCase(loanRepo)
	loanBalanceUC := usecase.NewLoanBalanceUseCase(loanRepo)
	nextInstallmentUC := usecase.NewNextInstallmentUseCase(loanRepo)
	listInstallmentsUC := usecase.NewListInstallmentsUseCase(installmentRepo)
	listPaymentsUC := usecase.NewListPaymentsUseCase(loanRepo, paymentRepo)
	createClientUC := usecase.NewCreateClientUseCase(clientRepo)
	updateClientUC := usecase.NewUpdateClientUseCase(clientRepo)
	deleteClientUC := usecase.NewDeleteClientUseCase(clientRepo, loanRepo)
	getClientUC := usecase.NewGetClientUseCase(clientRepo)
	listClientsUC := usecase.NewListClientsUseCase(clientRepo)
	dashboardUC := usecase.NewDashboardUseCase(reportingRepo, kpiCache, cfg.DashboardTTL)
	loginUC := usecase.NewLoginUseCase(userRepo, jwtSvc)

	// HTTP server.
	handlers := rest.Handlers{
		Auth:         rest.NewAuthHandler(loginUC, logger),
		Clients:      rest.NewClientHandler(createClientUC, updateClientUC, deleteClientUC, getClientUC, listClientsUC, logger),
		Loans:        rest.NewLoanHandler(issueLoanUC, getLoanUC, listLoansUC, cancelLoanUC, loanBalanceUC, nextInstallmentUC, listPaymentsUC, logger),
		Payments:     rest.NewPaymentHandler(registerPaymentUC, listPaymentsUC, logger),
		Installments: rest.NewInstallmentHandler(listInstallmentsUC, logger),
		Dashboard:    rest.NewDashboardHandler(dashboardUC, logger),
		Health:       rest.NewHealthHandler(pool),
		Metrics:      metricsHandler,
	}
	router := rest.NewRouter(handlers, jwtSvc, logger)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("gestor-creditos stopped")
}
