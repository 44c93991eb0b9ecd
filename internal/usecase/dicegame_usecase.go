package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/betwallet/internal/domain"
)

// RollFunc produces one die face in [1,6].
type RollFunc func() int

// CryptoRoll rolls with crypto/rand.
func CryptoRoll() int {
	n, err := rand.Int(rand.Reader, big.NewInt(6))
	if err != nil {
		// crypto/rand failing means the process is in no state to
		// take wagers.
		panic(err)
	}

	return int(n.Int64()) + 1
}

// DiceGameUseCase runs the dice game: one stake debit per round, one
// payout credit on a win. Another thin caller of the wallet service.
type DiceGameUseCase struct {
	gameRepo DiceGameRepository
	wallet   WalletOperations
	idGen    IDGenerator
	roll     RollFunc
}

// NewDiceGameUseCase creates a new DiceGameUseCase. roll may be nil, in
// which case crypto/rand is used.
func NewDiceGameUseCase(gameRepo DiceGameRepository, wallet WalletOperations, idGen IDGenerator, roll RollFunc) *DiceGameUseCase {
	if roll == nil {
		roll = CryptoRoll
	}

	return &DiceGameUseCase{
		gameRepo: gameRepo,
		wallet:   wallet,
		idGen:    idGen,
		roll:     roll,
	}
}

// PlayDiceInput represents input for one round.
type PlayDiceInput struct {
	UserID    string
	BetAmount decimal.Decimal
	BetType   domain.DiceBetType
	BetValue  int
}

// Play stakes the bet, rolls, and settles the round.
func (uc *DiceGameUseCase) Play(ctx context.Context, input PlayDiceInput) (*domain.DiceGame, OperationResult) {
	if !input.BetType.IsValid() {
		return nil, failure(domain.ErrInvalidDiceBet.Error())
	}

	if input.BetType == domain.DiceBetSingle && (input.BetValue < 1 || input.BetValue > 6) {
		return nil, failure(domain.ErrInvalidDicePick.Error())
	}

	if input.BetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, failure(domain.ErrInvalidAmount.Error())
	}

	gameID := uc.idGen.Generate()

	res := uc.wallet.ProcessBetPlacement(ctx, input.UserID, input.BetAmount, gameID)
	if !res.Success {
		return nil, res
	}

	game := &domain.DiceGame{
		ID:           gameID,
		UserID:       input.UserID,
		BetAmount:    input.BetAmount,
		BetType:      input.BetType,
		BetValue:     input.BetValue,
		DiceResult:   uc.roll(),
		PayoutAmount: decimal.Zero,
		Status:       domain.DiceGameLost,
		CreatedAt:    time.Now().UTC(),
	}

	if input.BetType.Wins(input.BetValue, game.DiceResult) {
		payout := input.BetAmount.Mul(input.BetType.PayoutMultiplier())

		win := uc.wallet.ProcessBetWinning(ctx, input.UserID, payout, gameID)
		if !win.Success {
			// The stake already left the wallet; put it back.
			uc.wallet.RefundBetStake(ctx, input.UserID, input.BetAmount, gameID)
			return nil, win
		}

		game.PayoutAmount = payout
		game.Status = domain.DiceGameWon
	}

	if err := uc.gameRepo.Create(ctx, game); err != nil {
		// Unwind the whole round: stake back, and claw back a payout
		// that was already credited.
		uc.wallet.RefundBetStake(ctx, input.UserID, input.BetAmount, gameID)
		if game.Status == domain.DiceGameWon {
			uc.wallet.ReverseBetWinning(ctx, input.UserID, game.PayoutAmount, gameID)
		}
		return nil, failure(fmt.Sprintf("failed to record game: %s", err))
	}

	message := "Better luck next time"
	if game.Status == domain.DiceGameWon {
		message = "You won " + game.PayoutAmount.String()
	}

	return game, OperationResult{Success: true, Message: message, Transaction: res.Transaction}
}

// History lists a user's recent games.
func (uc *DiceGameUseCase) History(ctx context.Context, userID string, limit, offset int) ([]*domain.DiceGame, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.gameRepo.ListByUser(ctx, userID, limit, offset)
}
