package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/betwallet/internal/adapter/http/handler"
	"github.com/iho/betwallet/internal/adapter/http/middleware"
	"github.com/iho/betwallet/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	WalletHandler    *handler.WalletHandler
	BetHandler       *handler.BetHandler
	GameHandler      *handler.GameHandler
	AuditHandler     *handler.AuditHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Identity)

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Wallet
		r.Route("/wallet", func(r chi.Router) {
			r.Post("/", cfg.WalletHandler.Create)
			r.Get("/summary", cfg.WalletHandler.Summary)
			r.Get("/stats", cfg.WalletHandler.Stats)
			r.Get("/transactions", cfg.WalletHandler.Transactions)
			r.Get("/check-balance", cfg.WalletHandler.CheckBalance)
			r.Post("/deposit", cfg.WalletHandler.Deposit)
			r.Post("/withdraw", cfg.WalletHandler.Withdraw)
			r.Put("/active", cfg.WalletHandler.SetActive)
		})

		// Bets
		r.Route("/bets", func(r chi.Router) {
			r.Post("/", cfg.BetHandler.Place)
			r.Get("/", cfg.BetHandler.List)
			r.Get("/{id}", cfg.BetHandler.Get)
			r.Post("/{id}/settle", cfg.BetHandler.Settle)
		})

		// Dice game
		r.Route("/games/dice", func(r chi.Router) {
			r.Post("/play", cfg.GameHandler.Play)
			r.Get("/history", cfg.GameHandler.History)
		})

		// Ledger audit
		r.Route("/audit", func(r chi.Router) {
			r.Get("/wallets", cfg.AuditHandler.All)
			r.Get("/wallets/{id}", cfg.AuditHandler.Wallet)
		})
	})

	return r
}
