package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a user's virtual-currency balance. There is exactly one
// wallet per user; the user record itself lives in an external account
// store and is referenced by opaque ID only.
type Wallet struct {
	ID        string
	UserID    string
	Balance   decimal.Decimal
	Currency  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSufficientBalance reports whether the wallet can cover amount.
func (w *Wallet) HasSufficientBalance(amount decimal.Decimal) bool {
	return w.Balance.GreaterThanOrEqual(amount)
}

// ValidateDebit checks that debiting amount keeps the balance non-negative.
func (w *Wallet) ValidateDebit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if w.Balance.Sub(amount).IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// ValidateCredit checks that amount is creditable.
func (w *Wallet) ValidateCredit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// ApplyDebit returns the balance after a debit of amount.
func (w *Wallet) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return w.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit of amount.
func (w *Wallet) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return w.Balance.Add(amount)
}

// WalletSummary is a read-only aggregate for dashboard display.
type WalletSummary struct {
	WalletID         string
	UserID           string
	Balance          decimal.Decimal
	Currency         string
	TotalCredited    decimal.Decimal
	TotalDebited     decimal.Decimal
	TransactionCount int64
	IsActive         bool
	CreatedAt        time.Time
}

// BalanceCheck answers whether a wallet can cover a prospective debit.
// Advisory only; debits re-check under the row lock.
type BalanceCheck struct {
	Sufficient bool
	Balance    decimal.Decimal
	Required   decimal.Decimal
}

// WalletStats aggregates betting activity for a wallet. Computed from
// transaction categories, not from description text.
type WalletStats struct {
	Balance       decimal.Decimal
	TotalBets     int64
	TotalWins     int64
	TotalWagered  decimal.Decimal
	TotalWinnings decimal.Decimal
	WinRate       decimal.Decimal
}
