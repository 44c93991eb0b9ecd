package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/betwallet/internal/domain"
)

// WalletRepository defines data access for wallets.
type WalletRepository interface {
	Create(ctx context.Context, tx Transaction, wallet *domain.Wallet) error
	GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error)
	GetByID(ctx context.Context, id string) (*domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Wallet, error)
}

// CategoryAggregate is the count and total amount of COMPLETED
// transactions within one category.
type CategoryAggregate struct {
	Count int64
	Total decimal.Decimal
}

// TransactionRepository defines data access for ledger entries. Entries
// are append-only: there is no update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	ListByWallet(ctx context.Context, walletID string, limit, offset int) ([]*domain.Transaction, error)
	// ListByWalletAscending returns all COMPLETED entries in creation
	// order, for replay-based auditing.
	ListByWalletAscending(ctx context.Context, walletID string) ([]*domain.Transaction, error)
	CountByWallet(ctx context.Context, walletID string) (int64, error)
	SumByType(ctx context.Context, walletID string, txnType domain.TransactionType) (decimal.Decimal, error)
	AggregateByCategory(ctx context.Context, walletID string) (map[domain.TransactionCategory]CategoryAggregate, error)
}

// BetRepository defines data access for bets.
type BetRepository interface {
	Create(ctx context.Context, bet *domain.Bet) error
	GetByID(ctx context.Context, id string) (*domain.Bet, error)
	Update(ctx context.Context, bet *domain.Bet) error
	// UpdateIfPending applies settlement fields only while the bet is
	// still pending, returning ErrBetNotPending when another settle won.
	UpdateIfPending(ctx context.Context, bet *domain.Bet) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Bet, error)
}

// DiceGameRepository defines data access for dice game rounds.
type DiceGameRepository interface {
	Create(ctx context.Context, game *domain.DiceGame) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.DiceGame, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
}

// Ledger is the transactional balance-mutation surface of the ledger
// store. Every mutation is one atomic unit: row lock, balance update
// and entry insert commit or roll back together.
type Ledger interface {
	OpenWallet(ctx context.Context, input OpenWalletInput) (*domain.Wallet, *domain.Transaction, error)
	Debit(ctx context.Context, input MutationInput) (*domain.Transaction, error)
	Credit(ctx context.Context, input MutationInput) (*domain.Transaction, error)
	TotalCredited(ctx context.Context, walletID string) (decimal.Decimal, error)
	TotalDebited(ctx context.Context, walletID string) (decimal.Decimal, error)
}

// WalletOperations is the slice of the wallet service needed by callers
// that move money (bets, games).
type WalletOperations interface {
	ProcessBetPlacement(ctx context.Context, userID string, amount decimal.Decimal, referenceID string) OperationResult
	ProcessBetWinning(ctx context.Context, userID string, amount decimal.Decimal, betID string) OperationResult
	RefundBetStake(ctx context.Context, userID string, amount decimal.Decimal, betID string) OperationResult
	ReverseBetWinning(ctx context.Context, userID string, amount decimal.Decimal, betID string) OperationResult
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation on transient store failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Delete releases a key, allowing the operation to be retried.
	Delete(ctx context.Context, key string) error
}
