package domain

import "errors"

var (
	// Wallet errors
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrWalletExists      = errors.New("wallet already exists for user")
	ErrWalletInactive    = errors.New("wallet is not active")
	ErrInsufficientFunds = errors.New("insufficient balance")

	// Transaction errors
	ErrInvalidAmount              = errors.New("amount must be positive")
	ErrInvalidTransactionType     = errors.New("invalid transaction type")
	ErrInvalidTransactionStatus   = errors.New("invalid transaction status")
	ErrInvalidTransactionCategory = errors.New("invalid transaction category")

	// Ledger integrity errors. Unreachable under correct locking; the
	// audit use case asserts they never occur rather than handling them.
	ErrLedgerInconsistent = errors.New("ledger inconsistent: replayed balance does not match recorded balance")

	// Bet errors
	ErrBetNotFound    = errors.New("bet not found")
	ErrBetNotPending  = errors.New("bet is not pending")
	ErrInvalidBetType = errors.New("invalid bet type")
	ErrInvalidOdds    = errors.New("odds must be at least 1.01")

	// Dice game errors
	ErrInvalidDiceBet  = errors.New("invalid dice bet type")
	ErrInvalidDicePick = errors.New("single-number bets require a number between 1 and 6")
)
