package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiceBetType is the wager placed on a dice roll.
type DiceBetType string

const (
	DiceBetSingle DiceBetType = "single"
	DiceBetEven   DiceBetType = "even"
	DiceBetOdd    DiceBetType = "odd"
	DiceBetHigh   DiceBetType = "high"
	DiceBetLow    DiceBetType = "low"
)

// IsValid checks the dice bet type is one of the closed set.
func (t DiceBetType) IsValid() bool {
	switch t {
	case DiceBetSingle, DiceBetEven, DiceBetOdd, DiceBetHigh, DiceBetLow:
		return true
	}
	return false
}

// PayoutMultiplier returns the multiplier applied to a winning stake.
func (t DiceBetType) PayoutMultiplier() decimal.Decimal {
	if t == DiceBetSingle {
		return decimal.NewFromInt(6)
	}
	return decimal.NewFromInt(2)
}

// DiceGameStatus is the outcome of a dice game.
type DiceGameStatus string

const (
	DiceGameWon  DiceGameStatus = "won"
	DiceGameLost DiceGameStatus = "lost"
)

// DiceGame records one round of the dice game.
type DiceGame struct {
	ID           string
	UserID       string
	BetAmount    decimal.Decimal
	BetType      DiceBetType
	BetValue     int
	DiceResult   int
	PayoutAmount decimal.Decimal
	Status       DiceGameStatus
	CreatedAt    time.Time
}

// Wins reports whether a roll wins the given wager.
func (t DiceBetType) Wins(betValue, roll int) bool {
	switch t {
	case DiceBetSingle:
		return roll == betValue
	case DiceBetEven:
		return roll%2 == 0
	case DiceBetOdd:
		return roll%2 != 0
	case DiceBetHigh:
		return roll >= 4
	case DiceBetLow:
		return roll <= 3
	}
	return false
}
