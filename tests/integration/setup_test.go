package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rs/zerolog"

	adaptershttp "github.com/iho/betwallet/internal/adapter/http"
	"github.com/iho/betwallet/internal/adapter/http/handler"
	"github.com/iho/betwallet/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/betwallet/internal/adapter/repository/redis"
	infraredis "github.com/iho/betwallet/internal/infrastructure/redis"
	"github.com/iho/betwallet/internal/usecase"
	"github.com/iho/betwallet/tests/testutil"
)

// stack wires the full service against real Postgres and Redis, the
// same way cmd/server does.
type stack struct {
	db         *testutil.TestDB
	router     http.Handler
	walletRepo *postgres.WalletRepository
	txnRepo    *postgres.TransactionRepository
	walletUC   *usecase.WalletUseCase
	ledgerUC   *usecase.LedgerUseCase
}

// newStack builds the stack. roll may be nil for real dice.
func newStack(t *testing.T, roll usecase.RollFunc) *stack {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)

	pool := testDB.Pool
	walletRepo := postgres.NewWalletRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	betRepo := postgres.NewBetRepository(pool)
	gameRepo := postgres.NewDiceGameRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	txManager := postgres.NewTxManager(pool)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier(zerolog.Nop())

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	cache := redisrepo.NewCache(redisClient)
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)

	ledgerUC := usecase.NewLedgerUseCase(txManager, walletRepo, txnRepo, outboxRepo, idGen, retrier)
	walletUC := usecase.NewWalletUseCase(ledgerUC, walletRepo, txnRepo, cache, usecase.DefaultWalletConfig())
	betUC := usecase.NewBetUseCase(betRepo, walletUC, idGen)
	gameUC := usecase.NewDiceGameUseCase(gameRepo, walletUC, idGen, roll)
	auditUC := usecase.NewAuditUseCase(walletRepo, txnRepo)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		WalletHandler:    handler.NewWalletHandler(walletUC),
		BetHandler:       handler.NewBetHandler(betUC),
		GameHandler:      handler.NewGameHandler(gameUC),
		AuditHandler:     handler.NewAuditHandler(auditUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
		Logger:           zerolog.Nop(),
	})

	return &stack{
		db:         testDB,
		router:     router,
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
		walletUC:   walletUC,
		ledgerUC:   ledgerUC,
	}
}

// do sends a request through the router as the given user and decodes
// the JSON response into out (when out is non-nil).
func (s *stack) do(t *testing.T, method, path, userID string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	r := httptest.NewRequest(method, path, reader)
	r.Header.Set("Content-Type", "application/json")
	if userID != "" {
		r.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, r)

	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
		}
	}

	return w
}
