package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/betwallet/internal/domain"
)

// DiceGameRepository implements usecase.DiceGameRepository.
type DiceGameRepository struct {
	pool Pool
}

// NewDiceGameRepository creates a new DiceGameRepository.
func NewDiceGameRepository(pool Pool) *DiceGameRepository {
	return &DiceGameRepository{pool: pool}
}

// Create inserts a dice game round.
func (r *DiceGameRepository) Create(ctx context.Context, game *domain.DiceGame) error {
	query := `INSERT INTO dice_games (id, user_id, bet_amount, bet_type, bet_value, dice_result, payout_amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		game.ID, game.UserID, decimalToNumeric(game.BetAmount), string(game.BetType),
		int32(game.BetValue), int32(game.DiceResult), decimalToNumeric(game.PayoutAmount),
		string(game.Status), timeToPgTimestamptz(game.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert dice game: %w", err)
	}

	return nil
}

// ListByUser lists game rounds of a user, newest first.
func (r *DiceGameRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.DiceGame, error) {
	query := `SELECT id, user_id, bet_amount, bet_type, bet_value, dice_result, payout_amount, status, created_at
		FROM dice_games WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, int32(limit), int32(offset))
	if err != nil {
		return nil, fmt.Errorf("list dice games: %w", err)
	}
	defer rows.Close()

	games := make([]*domain.DiceGame, 0, limit)
	for rows.Next() {
		var (
			game      domain.DiceGame
			betType   string
			status    string
			betAmount pgtype.Numeric
			payout    pgtype.Numeric
			betValue  int32
			result    int32
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&game.ID, &game.UserID, &betAmount, &betType,
			&betValue, &result, &payout, &status, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan dice game: %w", err)
		}

		game.BetAmount = numericToDecimal(betAmount)
		game.BetType = domain.DiceBetType(betType)
		game.BetValue = int(betValue)
		game.DiceResult = int(result)
		game.PayoutAmount = numericToDecimal(payout)
		game.Status = domain.DiceGameStatus(status)
		game.CreatedAt = createdAt.Time

		games = append(games, &game)
	}

	return games, rows.Err()
}
