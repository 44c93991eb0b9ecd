package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BetType is the market a bet was placed on.
type BetType string

const (
	BetTypeTeamAWin BetType = "team_a_win"
	BetTypeTeamBWin BetType = "team_b_win"
	BetTypeDraw     BetType = "draw"
	BetTypeOver     BetType = "over"
	BetTypeUnder    BetType = "under"
)

// IsValid checks the bet type is one of the closed set.
func (t BetType) IsValid() bool {
	switch t {
	case BetTypeTeamAWin, BetTypeTeamBWin, BetTypeDraw, BetTypeOver, BetTypeUnder:
		return true
	}
	return false
}

// BetStatus is the settlement state of a bet.
type BetStatus string

const (
	BetStatusPending   BetStatus = "pending"
	BetStatusWon       BetStatus = "won"
	BetStatusLost      BetStatus = "lost"
	BetStatusVoid      BetStatus = "void"
	BetStatusCancelled BetStatus = "cancelled"
)

// Bet is a wager against a scheduled event. The event itself lives in an
// external catalogue and is referenced by ID.
type Bet struct {
	ID              string
	UserID          string
	EventID         string
	Type            BetType
	Stake           decimal.Decimal
	Odds            decimal.Decimal
	PotentialPayout decimal.Decimal
	Status          BetStatus
	ActualPayout    decimal.Decimal
	IPAddress       string
	PlacedAt        time.Time
	SettledAt       *time.Time
	UpdatedAt       time.Time
}

// Payout returns the winnings a bet pays if it wins.
func (b *Bet) Payout() decimal.Decimal {
	return b.Stake.Mul(b.Odds)
}

// Validate checks the structural invariants of a bet.
func (b *Bet) Validate() error {
	if !b.Type.IsValid() {
		return ErrInvalidBetType
	}
	if b.Stake.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if b.Odds.LessThan(decimal.RequireFromString("1.01")) {
		return ErrInvalidOdds
	}
	return nil
}
