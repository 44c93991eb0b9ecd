package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/iho/betwallet/internal/domain"
	"github.com/iho/betwallet/internal/infrastructure/postgres"
)

// TestDB provides isolated test database connections.
type TestDB struct {
	Pool *pgxpool.Pool
	t    *testing.T
}

// NewTestDB connects to the database named by DATABASE_URL, running
// migrations first. Tests that need it are skipped when the variable is
// not set.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set; skipping database test")
	}

	migrationsPath := "migrations"
	if _, err := os.Stat(migrationsPath); os.IsNotExist(err) {
		// Relative from tests/integration.
		migrationsPath = "../../migrations"
	}

	if err := postgres.RunMigrations(dbURL, migrationsPath); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		t:    t,
	}
}

// Cleanup closes the database connection.
func (db *TestDB) Cleanup() {
	db.Pool.Close()
}

// TruncateAll removes all data from tables.
func (db *TestDB) TruncateAll(ctx context.Context) {
	db.t.Helper()

	_, err := db.Pool.Exec(ctx, `
		TRUNCATE TABLE outbox_events CASCADE;
		TRUNCATE TABLE dice_games CASCADE;
		TRUNCATE TABLE bets CASCADE;
		TRUNCATE TABLE transactions CASCADE;
		TRUNCATE TABLE wallets CASCADE;
	`)
	if err != nil {
		db.t.Fatalf("failed to truncate tables: %v", err)
	}
}

// CreateTestWallet inserts an active wallet with the given balance.
func (db *TestDB) CreateTestWallet(ctx context.Context, userID string, balance decimal.Decimal) *domain.Wallet {
	db.t.Helper()

	now := time.Now().UTC()
	wallet := &domain.Wallet{
		ID:        GenerateID(),
		UserID:    userID,
		Balance:   balance,
		Currency:  "USD",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var numericBalance pgtype.Numeric
	_ = numericBalance.Scan(balance.String())

	_, err := db.Pool.Exec(ctx, `
		INSERT INTO wallets (id, user_id, balance, currency, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, wallet.ID, wallet.UserID, numericBalance, wallet.Currency, wallet.IsActive,
		pgtype.Timestamptz{Time: now, Valid: true}, pgtype.Timestamptz{Time: now, Valid: true})
	if err != nil {
		db.t.Fatalf("failed to create test wallet: %v", err)
	}

	return wallet
}

// WalletBalance reads a wallet's current balance straight from the row.
func (db *TestDB) WalletBalance(ctx context.Context, walletID string) decimal.Decimal {
	db.t.Helper()

	var balance pgtype.Numeric
	if err := db.Pool.QueryRow(ctx, `SELECT balance FROM wallets WHERE id = $1`, walletID).Scan(&balance); err != nil {
		db.t.Fatalf("failed to read wallet balance: %v", err)
	}

	if !balance.Valid {
		db.t.Fatal("wallet balance is NULL")
	}

	return decimal.NewFromBigInt(balance.Int, balance.Exp)
}

// GenerateID generates a new ULID.
func GenerateID() string {
	return ulid.Make().String()
}
