package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/betwallet/internal/domain"
)

// BetUseCase handles bet placement and settlement. It is a thin caller
// of the wallet service: the stake debit and the winning credit are its
// only two touches of the ledger.
type BetUseCase struct {
	betRepo BetRepository
	wallet  WalletOperations
	idGen   IDGenerator
}

// NewBetUseCase creates a new BetUseCase.
func NewBetUseCase(betRepo BetRepository, wallet WalletOperations, idGen IDGenerator) *BetUseCase {
	return &BetUseCase{
		betRepo: betRepo,
		wallet:  wallet,
		idGen:   idGen,
	}
}

// PlaceBetInput represents input for placing a bet.
type PlaceBetInput struct {
	UserID    string
	EventID   string
	Type      domain.BetType
	Stake     decimal.Decimal
	Odds      decimal.Decimal
	IPAddress string
}

// PlaceBet debits the stake and records a PENDING bet. The result
// carries the user-facing message either way.
func (uc *BetUseCase) PlaceBet(ctx context.Context, input PlaceBetInput) (*domain.Bet, OperationResult) {
	now := time.Now().UTC()
	bet := &domain.Bet{
		ID:              uc.idGen.Generate(),
		UserID:          input.UserID,
		EventID:         input.EventID,
		Type:            input.Type,
		Stake:           input.Stake,
		Odds:            input.Odds,
		PotentialPayout: input.Stake.Mul(input.Odds),
		Status:          domain.BetStatusPending,
		ActualPayout:    decimal.Zero,
		IPAddress:       input.IPAddress,
		PlacedAt:        now,
		UpdatedAt:       now,
	}

	if err := bet.Validate(); err != nil {
		return nil, failure(err.Error())
	}

	res := uc.wallet.ProcessBetPlacement(ctx, input.UserID, input.Stake, bet.ID)
	if !res.Success {
		return nil, res
	}

	if err := uc.betRepo.Create(ctx, bet); err != nil {
		// The stake already left the wallet; put it back.
		uc.wallet.RefundBetStake(ctx, input.UserID, input.Stake, bet.ID)
		return nil, failure(fmt.Sprintf("failed to record bet: %s", err))
	}

	return bet, OperationResult{Success: true, Message: "Bet placed successfully", Transaction: res.Transaction}
}

// SettleBet resolves a pending bet. Winning bets credit stake times
// odds; voided or cancelled bets refund the stake; lost bets pay
// nothing. The pending->settled transition is claimed in the store
// before any money moves, so concurrent settles credit at most once.
func (uc *BetUseCase) SettleBet(ctx context.Context, betID string, outcome domain.BetStatus) (*domain.Bet, error) {
	bet, err := uc.betRepo.GetByID(ctx, betID)
	if err != nil {
		return nil, err
	}

	if bet.Status != domain.BetStatusPending {
		return nil, domain.ErrBetNotPending
	}

	switch outcome {
	case domain.BetStatusWon:
		bet.ActualPayout = bet.Payout()
	case domain.BetStatusVoid, domain.BetStatusCancelled:
		bet.ActualPayout = bet.Stake
	case domain.BetStatusLost:
		bet.ActualPayout = decimal.Zero
	default:
		return nil, fmt.Errorf("cannot settle bet to status %q", outcome)
	}

	now := time.Now().UTC()
	bet.Status = outcome
	bet.SettledAt = &now
	bet.UpdatedAt = now

	if err := uc.betRepo.UpdateIfPending(ctx, bet); err != nil {
		return nil, err
	}

	switch outcome {
	case domain.BetStatusWon:
		res := uc.wallet.ProcessBetWinning(ctx, bet.UserID, bet.ActualPayout, bet.ID)
		if !res.Success {
			uc.reopenBet(ctx, bet)
			return nil, fmt.Errorf("crediting winnings for bet %s: %s", bet.ID, res.Message)
		}

	case domain.BetStatusVoid, domain.BetStatusCancelled:
		res := uc.wallet.RefundBetStake(ctx, bet.UserID, bet.Stake, bet.ID)
		if !res.Success {
			uc.reopenBet(ctx, bet)
			return nil, fmt.Errorf("refunding stake for bet %s: %s", bet.ID, res.Message)
		}
	}

	return bet, nil
}

// reopenBet returns a claimed bet to pending after its payout could not
// be credited, so the settle can be retried.
func (uc *BetUseCase) reopenBet(ctx context.Context, bet *domain.Bet) {
	bet.Status = domain.BetStatusPending
	bet.ActualPayout = decimal.Zero
	bet.SettledAt = nil
	bet.UpdatedAt = time.Now().UTC()
	_ = uc.betRepo.Update(ctx, bet)
}

// GetBet retrieves a bet by ID.
func (uc *BetUseCase) GetBet(ctx context.Context, id string) (*domain.Bet, error) {
	return uc.betRepo.GetByID(ctx, id)
}

// ListBetsInput represents input for listing bets.
type ListBetsInput struct {
	UserID string
	Limit  int
	Offset int
}

// ListBets lists a user's bets, most recent first.
func (uc *BetUseCase) ListBets(ctx context.Context, input ListBetsInput) ([]*domain.Bet, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.betRepo.ListByUser(ctx, input.UserID, limit, offset)
}
