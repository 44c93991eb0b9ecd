package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/betwallet/internal/domain"
	"github.com/iho/betwallet/internal/usecase"
)

// DepositRequest represents a request to add funds.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// WithdrawRequest represents a request to remove funds.
type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// SetActiveRequest represents a request to toggle wallet activation.
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// PlaceBetRequest represents a request to place a bet.
type PlaceBetRequest struct {
	EventID string          `json:"event_id"`
	Type    string          `json:"type"`
	Stake   decimal.Decimal `json:"stake"`
	Odds    decimal.Decimal `json:"odds"`
}

// ToUseCaseInput converts to use case input.
func (r *PlaceBetRequest) ToUseCaseInput(userID, ipAddress string) usecase.PlaceBetInput {
	return usecase.PlaceBetInput{
		UserID:    userID,
		EventID:   r.EventID,
		Type:      domain.BetType(r.Type),
		Stake:     r.Stake,
		Odds:      r.Odds,
		IPAddress: ipAddress,
	}
}

// SettleBetRequest represents a request to settle a pending bet.
type SettleBetRequest struct {
	Outcome string `json:"outcome"`
}

// PlayDiceRequest represents a request to play one dice round.
type PlayDiceRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	BetType  string          `json:"bet_type"`
	BetValue int             `json:"bet_value,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *PlayDiceRequest) ToUseCaseInput(userID string) usecase.PlayDiceInput {
	return usecase.PlayDiceInput{
		UserID:    userID,
		BetAmount: r.Amount,
		BetType:   domain.DiceBetType(r.BetType),
		BetValue:  r.BetValue,
	}
}
