package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidCurrency = errors.New("invalid currency code")
	ErrAmountTooLarge  = errors.New("amount exceeds maximum allowed")
	ErrAmountTooSmall  = errors.New("amount below minimum allowed")
)

// Validation constants
const (
	MinAmount = "0.01"
	MaxAmount = "1000000" // single-operation cap on virtual currency
)

// Valid currency codes (ISO 4217). Virtual balances still carry a
// display currency.
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CNY": true, "AUD": true, "CAD": true, "CHF": true,
	"SEK": true, "NZD": true, "KRW": true, "SGD": true,
	"NOK": true, "MXN": true, "INR": true, "BRL": true,
}

// ValidateCurrency validates currency code
func ValidateCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	if !validCurrencies[currency] {
		return fmt.Errorf("%w: %s is not a valid ISO 4217 currency code", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidateAmount validates a debit/credit amount
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	minAmount, _ := decimal.NewFromString(MinAmount)
	if amount.LessThan(minAmount) {
		return fmt.Errorf("%w: minimum amount is %s", ErrAmountTooSmall, MinAmount)
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	return nil
}

// Pagination bounds applied by ValidatePagination.
const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
