package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/betwallet/internal/domain"
	"github.com/iho/betwallet/internal/usecase"
)

const transactionColumns = `id, wallet_id, type, category, amount, balance_after, description, status, reference_id, created_at`

// TransactionRepository implements usecase.TransactionRepository.
// Entries are append-only: there is no UPDATE or DELETE path.
type TransactionRepository struct {
	pool Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a ledger entry within a transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `INSERT INTO transactions (id, wallet_id, type, category, amount, balance_after, description, status, reference_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := pgxTx.Exec(ctx, query,
		txn.ID, txn.WalletID, string(txn.Type), string(txn.Category),
		decimalToNumeric(txn.Amount), decimalToNumeric(txn.BalanceAfter),
		txn.Description, string(txn.Status), txn.ReferenceID,
		timeToPgTimestamptz(txn.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	return nil
}

// ListByWallet lists entries newest first with pagination.
func (r *TransactionRepository) ListByWallet(ctx context.Context, walletID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE wallet_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, walletID, int32(limit), int32(offset))
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows, limit)
}

// ListByWalletAscending returns all COMPLETED entries in creation order.
// Used for replay-based auditing, so it deliberately has no pagination.
func (r *TransactionRepository) ListByWalletAscending(ctx context.Context, walletID string) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE wallet_id = $1 AND status = $2 ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, walletID, string(domain.TransactionStatusCompleted))
	if err != nil {
		return nil, fmt.Errorf("list transactions ascending: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows, 0)
}

// CountByWallet counts all entries of a wallet.
func (r *TransactionRepository) CountByWallet(ctx context.Context, walletID string) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE wallet_id = $1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, walletID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}

	return count, nil
}

// SumByType sums COMPLETED entry amounts of one type.
func (r *TransactionRepository) SumByType(ctx context.Context, walletID string, txnType domain.TransactionType) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions
		WHERE wallet_id = $1 AND type = $2 AND status = $3`

	var sum pgtype.Numeric
	err := r.pool.QueryRow(ctx, query, walletID, string(txnType), string(domain.TransactionStatusCompleted)).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum transactions by type: %w", err)
	}

	return numericToDecimal(sum), nil
}

// AggregateByCategory returns count and total of COMPLETED entries per
// category. Categories with no entries are absent from the map.
func (r *TransactionRepository) AggregateByCategory(ctx context.Context, walletID string) (map[domain.TransactionCategory]usecase.CategoryAggregate, error) {
	query := `SELECT category, COUNT(*), COALESCE(SUM(amount), 0) FROM transactions
		WHERE wallet_id = $1 AND status = $2 GROUP BY category`

	rows, err := r.pool.Query(ctx, query, walletID, string(domain.TransactionStatusCompleted))
	if err != nil {
		return nil, fmt.Errorf("aggregate transactions by category: %w", err)
	}
	defer rows.Close()

	aggregates := make(map[domain.TransactionCategory]usecase.CategoryAggregate)
	for rows.Next() {
		var (
			category string
			count    int64
			total    pgtype.Numeric
		)
		if err := rows.Scan(&category, &count, &total); err != nil {
			return nil, fmt.Errorf("scan category aggregate: %w", err)
		}

		aggregates[domain.TransactionCategory(category)] = usecase.CategoryAggregate{
			Count: count,
			Total: numericToDecimal(total),
		}
	}

	return aggregates, rows.Err()
}

func collectTransactions(rows pgx.Rows, sizeHint int) ([]*domain.Transaction, error) {
	txns := make([]*domain.Transaction, 0, sizeHint)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn          domain.Transaction
		txnType      string
		category     string
		status       string
		amount       pgtype.Numeric
		balanceAfter pgtype.Numeric
		createdAt    pgtype.Timestamptz
	)

	err := row.Scan(
		&txn.ID, &txn.WalletID, &txnType, &category,
		&amount, &balanceAfter, &txn.Description, &status,
		&txn.ReferenceID, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	txn.Type = domain.TransactionType(txnType)
	txn.Category = domain.TransactionCategory(category)
	txn.Status = domain.TransactionStatus(status)
	txn.Amount = numericToDecimal(amount)
	txn.BalanceAfter = numericToDecimal(balanceAfter)
	txn.CreatedAt = createdAt.Time

	return &txn, nil
}
