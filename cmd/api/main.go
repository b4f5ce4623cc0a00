package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"impact360-payments/config"
	"impact360-payments/internal/adapter/gateway/pesapal"
	httpHandler "impact360-payments/internal/adapter/http/handler"
	pgStorage "impact360-payments/internal/adapter/storage/postgres"
	redisStorage "impact360-payments/internal/adapter/storage/redis"
	"impact360-payments/internal/core/domain"
	"impact360-payments/internal/core/ports"
	"impact360-payments/internal/service"
	"impact360-payments/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("environment", cfg.Pesapal.Environment).
		Str("base_url", cfg.Pesapal.BaseURL()).
		Str("ipn_url", cfg.Pesapal.IPNURL).
		Int("port", cfg.Server.Port).
		Msg("Starting Impact360 payment service")

	if cfg.Pesapal.IPNID != "" {
		log.Info().Str("ipn_id", cfg.Pesapal.IPNID).Msg("Using pre-registered IPN channel")
	} else {
		log.Info().Msg("IPN channel not configured, will register on first payment")
	}

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize storage adapters
	reconciliationRepo := pgStorage.NewReconciliationRepo(pool)
	statusCache := redisStorage.NewStatusCache(rdb)

	// Initialize gateway client
	gatewayClient := pesapal.NewClient(
		cfg.Pesapal.BaseURL(),
		cfg.Pesapal.ConsumerKey,
		cfg.Pesapal.ConsumerSecret,
		&http.Client{Timeout: cfg.Pesapal.RequestTimeout},
		log,
	)

	// Initialize core services
	tokens := service.NewCredentialCache(gatewayClient, cfg.Pesapal.TokenMargin, log)
	channels := service.NewChannelRegistry(gatewayClient, tokens, cfg.Pesapal.IPNURL, cfg.Pesapal.IPNID, log)
	statusSvc := service.NewStatusService(gatewayClient, tokens, statusCache, log)
	paymentSvc := service.NewPaymentService(gatewayClient, tokens, channels, service.OrderConfig{
		Currency:    "KES",
		Region:      cfg.Phone.Region,
		CallbackURL: cfg.Frontend.CallbackURL(),
		PhoneRules: domain.PhoneRules{
			CountryCode: cfg.Phone.CountryCode,
			TrunkPrefix: cfg.Phone.TrunkPrefix,
		},
	}, log)
	ipnSvc := service.NewIPNService(statusSvc, reconciliationRepo, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		PaymentSvc:     paymentSvc,
		StatusSvc:      statusSvc,
		IPNSvc:         ipnSvc,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Environment:    cfg.Pesapal.Environment,
		FrontendOrigin: cfg.Frontend.URL,
		VerboseErrors:  cfg.Errors.Verbose,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
