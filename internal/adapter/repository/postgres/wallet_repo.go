package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/betwallet/internal/domain"
	"github.com/iho/betwallet/internal/usecase"
)

const pgErrUniqueViolation = "23505"

const walletColumns = `id, user_id, balance, currency, is_active, created_at, updated_at`

// WalletRepository implements usecase.WalletRepository.
type WalletRepository struct {
	pool Pool
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(pool Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

// Create inserts a new wallet within a transaction. The UNIQUE
// constraint on user_id maps to domain.ErrWalletExists, which is how
// concurrent creation for the same user stays idempotent.
func (r *WalletRepository) Create(ctx context.Context, tx usecase.Transaction, wallet *domain.Wallet) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `INSERT INTO wallets (id, user_id, balance, currency, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := pgxTx.Exec(ctx, query,
		wallet.ID, wallet.UserID, decimalToNumeric(wallet.Balance), wallet.Currency,
		wallet.IsActive, timeToPgTimestamptz(wallet.CreatedAt), timeToPgTimestamptz(wallet.UpdatedAt),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrWalletExists
		}

		return fmt.Errorf("insert wallet: %w", err)
	}

	return nil
}

// GetByUserID retrieves a wallet by its owner (non-locking read).
func (r *WalletRepository) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`

	wallet, err := scanWallet(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}

		return nil, fmt.Errorf("get wallet by user id: %w", err)
	}

	return wallet, nil
}

// GetByID retrieves a wallet by ID (non-locking read).
func (r *WalletRepository) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`

	wallet, err := scanWallet(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}

		return nil, fmt.Errorf("get wallet by id: %w", err)
	}

	return wallet, nil
}

// GetByIDForUpdate retrieves a wallet by ID with a FOR UPDATE row lock.
// Must be called within a transaction.
func (r *WalletRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Wallet, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 FOR UPDATE`

	wallet, err := scanWallet(pgxTx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}

		return nil, fmt.Errorf("get wallet for update: %w", err)
	}

	return wallet, nil
}

// UpdateBalance updates the balance of a wallet within a transaction.
func (r *WalletRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `UPDATE wallets SET balance = $1, updated_at = $2 WHERE id = $3`

	tag, err := pgxTx.Exec(ctx, query, decimalToNumeric(balance), timeToPgTimestamptz(updatedAt), id)
	if err != nil {
		return fmt.Errorf("update wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotFound
	}

	return nil
}

// SetActive toggles the active flag of a wallet.
func (r *WalletRepository) SetActive(ctx context.Context, id string, active bool, updatedAt time.Time) error {
	query := `UPDATE wallets SET is_active = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, active, timeToPgTimestamptz(updatedAt), id)
	if err != nil {
		return fmt.Errorf("set wallet active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotFound
	}

	return nil
}

// List lists wallets with pagination, ordered by ID for stable paging.
func (r *WalletRepository) List(ctx context.Context, limit, offset int) ([]*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, int32(limit), int32(offset))
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	wallets := make([]*domain.Wallet, 0, limit)
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wallet: %w", err)
		}

		wallets = append(wallets, wallet)
	}

	return wallets, rows.Err()
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var (
		wallet    domain.Wallet
		balance   pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&wallet.ID, &wallet.UserID, &balance, &wallet.Currency,
		&wallet.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	wallet.Balance = numericToDecimal(balance)
	wallet.CreatedAt = createdAt.Time
	wallet.UpdatedAt = updatedAt.Time

	return &wallet, nil
}
