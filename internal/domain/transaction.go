package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType encodes the direction of a balance mutation. Amounts
// are always strictly positive; direction is never carried by sign.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// IsValid checks the type is one of the closed set.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeCredit || t == TransactionTypeDebit
}

// TransactionStatus is the lifecycle status of a ledger entry.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// IsValid checks the status is one of the closed set.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted,
		TransactionStatusFailed, TransactionStatusCancelled:
		return true
	}
	return false
}

// TransactionCategory classifies what a ledger entry paid for, so that
// activity stats never have to pattern-match description text.
type TransactionCategory string

const (
	CategoryOpeningBalance TransactionCategory = "opening_balance"
	CategoryDeposit        TransactionCategory = "deposit"
	CategoryWithdrawal     TransactionCategory = "withdrawal"
	CategoryBetStake       TransactionCategory = "bet_stake"
	CategoryBetPayout      TransactionCategory = "bet_payout"
	CategoryBetRefund      TransactionCategory = "bet_refund"
	// CategoryPayoutReversal claws back a credited payout whose round
	// could not be recorded.
	CategoryPayoutReversal TransactionCategory = "payout_reversal"
)

// IsValid checks the category is one of the closed set.
func (c TransactionCategory) IsValid() bool {
	switch c {
	case CategoryOpeningBalance, CategoryDeposit, CategoryWithdrawal,
		CategoryBetStake, CategoryBetPayout, CategoryBetRefund,
		CategoryPayoutReversal:
		return true
	}
	return false
}

// Transaction is one immutable entry in a wallet's append-only ledger.
// BalanceAfter snapshots the wallet balance immediately after the entry
// was applied, which makes the log self-auditable: replaying entries in
// creation order must reproduce every snapshot and the final balance.
type Transaction struct {
	ID           string
	WalletID     string
	Type         TransactionType
	Category     TransactionCategory
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	Description  string
	Status       TransactionStatus
	ReferenceID  string
	CreatedAt    time.Time
}

// Validate checks the structural invariants of a ledger entry.
func (t *Transaction) Validate() error {
	if !t.Type.IsValid() {
		return ErrInvalidTransactionType
	}
	if !t.Status.IsValid() {
		return ErrInvalidTransactionStatus
	}
	if !t.Category.IsValid() {
		return ErrInvalidTransactionCategory
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// Signed returns the entry amount with direction applied, for replay.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionTypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}
