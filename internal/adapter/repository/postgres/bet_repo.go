package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/betwallet/internal/domain"
)

const betColumns = `id, user_id, event_id, bet_type, stake, odds, potential_payout, status, actual_payout, ip_address, placed_at, settled_at, updated_at`

// BetRepository implements usecase.BetRepository.
type BetRepository struct {
	pool Pool
}

// NewBetRepository creates a new BetRepository.
func NewBetRepository(pool Pool) *BetRepository {
	return &BetRepository{pool: pool}
}

// Create inserts a new bet.
func (r *BetRepository) Create(ctx context.Context, bet *domain.Bet) error {
	query := `INSERT INTO bets (id, user_id, event_id, bet_type, stake, odds, potential_payout, status, actual_payout, ip_address, placed_at, settled_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, query,
		bet.ID, bet.UserID, bet.EventID, string(bet.Type),
		decimalToNumeric(bet.Stake), decimalToNumeric(bet.Odds),
		decimalToNumeric(bet.PotentialPayout), string(bet.Status),
		decimalToNumeric(bet.ActualPayout), bet.IPAddress,
		timeToPgTimestamptz(bet.PlacedAt), timePtrToPgTimestamptz(bet.SettledAt),
		timeToPgTimestamptz(bet.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert bet: %w", err)
	}

	return nil
}

// GetByID retrieves a bet by ID.
func (r *BetRepository) GetByID(ctx context.Context, id string) (*domain.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE id = $1`

	bet, err := scanBet(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBetNotFound
		}

		return nil, fmt.Errorf("get bet by id: %w", err)
	}

	return bet, nil
}

// Update persists settlement fields of a bet.
func (r *BetRepository) Update(ctx context.Context, bet *domain.Bet) error {
	query := `UPDATE bets SET status = $1, actual_payout = $2, settled_at = $3, updated_at = $4 WHERE id = $5`

	tag, err := r.pool.Exec(ctx, query,
		string(bet.Status), decimalToNumeric(bet.ActualPayout),
		timePtrToPgTimestamptz(bet.SettledAt), timeToPgTimestamptz(bet.UpdatedAt),
		bet.ID,
	)
	if err != nil {
		return fmt.Errorf("update bet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBetNotFound
	}

	return nil
}

// UpdateIfPending persists settlement fields only when the bet is still
// pending. The status predicate makes the pending->settled transition
// single-winner under concurrent settles.
func (r *BetRepository) UpdateIfPending(ctx context.Context, bet *domain.Bet) error {
	query := `UPDATE bets SET status = $1, actual_payout = $2, settled_at = $3, updated_at = $4
		WHERE id = $5 AND status = 'pending'`

	tag, err := r.pool.Exec(ctx, query,
		string(bet.Status), decimalToNumeric(bet.ActualPayout),
		timePtrToPgTimestamptz(bet.SettledAt), timeToPgTimestamptz(bet.UpdatedAt),
		bet.ID,
	)
	if err != nil {
		return fmt.Errorf("settle bet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBetNotPending
	}

	return nil
}

// ListByUser lists bets of a user, newest first.
func (r *BetRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets
		WHERE user_id = $1 ORDER BY placed_at DESC, id DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, int32(limit), int32(offset))
	if err != nil {
		return nil, fmt.Errorf("list bets: %w", err)
	}
	defer rows.Close()

	bets := make([]*domain.Bet, 0, limit)
	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bet: %w", err)
		}

		bets = append(bets, bet)
	}

	return bets, rows.Err()
}

func scanBet(row pgx.Row) (*domain.Bet, error) {
	var (
		bet             domain.Bet
		betType         string
		status          string
		stake           pgtype.Numeric
		odds            pgtype.Numeric
		potentialPayout pgtype.Numeric
		actualPayout    pgtype.Numeric
		placedAt        pgtype.Timestamptz
		settledAt       pgtype.Timestamptz
		updatedAt       pgtype.Timestamptz
	)

	err := row.Scan(
		&bet.ID, &bet.UserID, &bet.EventID, &betType,
		&stake, &odds, &potentialPayout, &status,
		&actualPayout, &bet.IPAddress, &placedAt, &settledAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	bet.Type = domain.BetType(betType)
	bet.Status = domain.BetStatus(status)
	bet.Stake = numericToDecimal(stake)
	bet.Odds = numericToDecimal(odds)
	bet.PotentialPayout = numericToDecimal(potentialPayout)
	bet.ActualPayout = numericToDecimal(actualPayout)
	bet.PlacedAt = placedAt.Time
	bet.SettledAt = pgTimestamptzToTimePtr(settledAt)
	bet.UpdatedAt = updatedAt.Time

	return &bet, nil
}
