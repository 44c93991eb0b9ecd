package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/iho/betwallet/internal/domain"
)

func newTestDiceGame() *domain.DiceGame {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.DiceGame{
		ID:           "01GAME",
		UserID:       "01USER",
		BetAmount:    decimal.RequireFromString("50.00"),
		BetType:      domain.DiceBetSingle,
		BetValue:     4,
		DiceResult:   4,
		PayoutAmount: decimal.RequireFromString("300.00"),
		Status:       domain.DiceGameWon,
		CreatedAt:    now,
	}
}

func diceGameTestColumns() []string {
	return []string{"id", "user_id", "bet_amount", "bet_type", "bet_value", "dice_result", "payout_amount", "status", "created_at"}
}

func diceGameRow(g *domain.DiceGame) *pgxmock.Rows {
	return pgxmock.NewRows(diceGameTestColumns()).AddRow(
		g.ID, g.UserID, decimalToNumeric(g.BetAmount), string(g.BetType),
		int32(g.BetValue), int32(g.DiceResult), decimalToNumeric(g.PayoutAmount),
		string(g.Status), timeToPgTimestamptz(g.CreatedAt),
	)
}

func TestDiceGameRepositoryCreate(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewDiceGameRepository(mockPool)
	g := newTestDiceGame()

	mockPool.ExpectExec("INSERT INTO dice_games").
		WithArgs(g.ID, g.UserID, decimalToNumeric(g.BetAmount), string(g.BetType),
			int32(g.BetValue), int32(g.DiceResult), decimalToNumeric(g.PayoutAmount),
			string(g.Status), timeToPgTimestamptz(g.CreatedAt)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Create(context.Background(), g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestDiceGameRepositoryCreateError(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewDiceGameRepository(mockPool)
	g := newTestDiceGame()

	mockPool.ExpectExec("INSERT INTO dice_games").
		WithArgs(g.ID, g.UserID, decimalToNumeric(g.BetAmount), string(g.BetType),
			int32(g.BetValue), int32(g.DiceResult), decimalToNumeric(g.PayoutAmount),
			string(g.Status), timeToPgTimestamptz(g.CreatedAt)).
		WillReturnError(errors.New("connection reset"))

	if err := repo.Create(context.Background(), g); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestDiceGameRepositoryListByUser(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewDiceGameRepository(mockPool)
	g := newTestDiceGame()

	mockPool.ExpectQuery("SELECT .+ FROM dice_games WHERE user_id").
		WithArgs(g.UserID, int32(10), int32(0)).
		WillReturnRows(diceGameRow(g))

	games, err := repo.ListByUser(context.Background(), g.UserID, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	got := games[0]
	if got.BetType != domain.DiceBetSingle || got.DiceResult != 4 {
		t.Fatalf("unexpected game round: %+v", got)
	}
	if !got.PayoutAmount.Equal(g.PayoutAmount) {
		t.Fatalf("expected payout %s, got %s", g.PayoutAmount, got.PayoutAmount)
	}

	assertExpectations(t, mockPool)
}

func TestDiceGameRepositoryListByUserEmpty(t *testing.T) {
	mockPool := newMockPool(t)
	repo := NewDiceGameRepository(mockPool)

	mockPool.ExpectQuery("SELECT .+ FROM dice_games WHERE user_id").
		WithArgs("01OTHER", int32(10), int32(0)).
		WillReturnRows(pgxmock.NewRows(diceGameTestColumns()))

	games, err := repo.ListByUser(context.Background(), "01OTHER", 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("expected no games, got %d", len(games))
	}
}
