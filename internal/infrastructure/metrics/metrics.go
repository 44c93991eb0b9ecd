package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Wallet metrics
	WalletsCreated   prometheus.Counter
	WalletOperations *prometheus.CounterVec
	WalletErrors     *prometheus.CounterVec
	LedgerMutations  *prometheus.CounterVec
	MutationDuration prometheus.Histogram
	MutationAmount   prometheus.Histogram

	// Bet metrics
	BetsPlaced  prometheus.Counter
	BetsSettled *prometheus.CounterVec
	BetStake    prometheus.Histogram

	// Dice game metrics
	DiceGamesPlayed *prometheus.CounterVec

	// Audit metrics
	AuditRuns          prometheus.Counter
	AuditDiscrepancies prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Outbox metrics
	OutboxPublished prometheus.Counter
	OutboxErrors    prometheus.Counter

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Wallet metrics
		WalletsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "betwallet_wallets_created_total",
			Help: "Total number of wallets created",
		}),
		WalletOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betwallet_wallet_operations_total",
				Help: "Total wallet operations by type and outcome",
			},
			[]string{"operation", "outcome"},
		),
		WalletErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betwallet_wallet_errors_total",
				Help: "Total wallet operation errors by type",
			},
			[]string{"error_type"},
		),
		LedgerMutations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betwallet_ledger_mutations_total",
				Help: "Total ledger mutations by type and category",
			},
			[]string{"type", "category"},
		),
		MutationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "betwallet_ledger_mutation_duration_seconds",
			Help:    "Duration of ledger mutations",
			Buckets: prometheus.DefBuckets,
		}),
		MutationAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "betwallet_ledger_mutation_amount",
			Help:    "Ledger mutation amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		}),

		// Bet metrics
		BetsPlaced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "betwallet_bets_placed_total",
			Help: "Total number of bets placed",
		}),
		BetsSettled: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betwallet_bets_settled_total",
				Help: "Total bets settled by outcome",
			},
			[]string{"outcome"},
		),
		BetStake: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "betwallet_bet_stake",
			Help:    "Bet stake amounts",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000},
		}),

		// Dice game metrics
		DiceGamesPlayed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betwallet_dice_games_total",
				Help: "Total dice games played by outcome",
			},
			[]string{"outcome"},
		),

		// Audit metrics
		AuditRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "betwallet_audit_runs_total",
			Help: "Total ledger audit runs",
		}),
		AuditDiscrepancies: promauto.NewCounter(prometheus.CounterOpts{
			Name: "betwallet_audit_discrepancies_total",
			Help: "Total wallets found inconsistent by audit",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betwallet_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "betwallet_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betwallet_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "betwallet_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "betwallet_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betwallet_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betwallet_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betwallet_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Outbox metrics
		OutboxPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "betwallet_outbox_published_total",
			Help: "Total outbox events published",
		}),
		OutboxErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "betwallet_outbox_errors_total",
			Help: "Total outbox publish errors",
		}),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "betwallet_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}
