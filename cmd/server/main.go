package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	httpAdapter "github.com/iho/betwallet/internal/adapter/http"
	"github.com/iho/betwallet/internal/adapter/http/handler"
	"github.com/iho/betwallet/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/betwallet/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/betwallet/internal/adapter/repository/redis"
	"github.com/iho/betwallet/internal/infrastructure/config"
	"github.com/iho/betwallet/internal/infrastructure/eventpublisher"
	"github.com/iho/betwallet/internal/infrastructure/logger"
	"github.com/iho/betwallet/internal/infrastructure/postgres"
	"github.com/iho/betwallet/internal/infrastructure/redis"
	"github.com/iho/betwallet/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	walletRepo := postgresRepo.NewWalletRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	betRepo := postgresRepo.NewBetRepository(pool)
	gameRepo := postgresRepo.NewDiceGameRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	// Initialize use cases
	ledgerUC := usecase.NewLedgerUseCase(txManager, walletRepo, txnRepo, outboxRepo, idGen, retrier)
	walletUC := usecase.NewWalletUseCase(ledgerUC, walletRepo, txnRepo, cache, usecase.WalletConfig{
		Currency:       cfg.WalletCurrency,
		InitialBalance: decimal.RequireFromString(cfg.WalletInitialBalance),
		DepositCeiling: decimal.RequireFromString(cfg.WalletDepositCeiling),
	})
	betUC := usecase.NewBetUseCase(betRepo, walletUC, idGen)
	gameUC := usecase.NewDiceGameUseCase(gameRepo, walletUC, idGen, nil)
	auditUC := usecase.NewAuditUseCase(walletRepo, txnRepo)

	// Start outbox publisher
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(log),
		Logger:     log,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxPollInterval,
	})
	go publisher.Start(publisherCtx)

	// Create router
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-publisherCtx.Done():
				return
			case <-ticker.C:
				rateLimiter.SweepStale(30 * time.Minute)
			}
		}
	}()

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WalletHandler:    handler.NewWalletHandler(walletUC),
		BetHandler:       handler.NewBetHandler(betUC),
		GameHandler:      handler.NewGameHandler(gameUC),
		AuditHandler:     handler.NewAuditHandler(auditUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
		RateLimiter:      rateLimiter,
		Logger:           log,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
