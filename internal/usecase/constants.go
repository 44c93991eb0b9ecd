package usecase

import "time"

const (
	// DefaultInitialBalance is the opening balance granted to a new wallet.
	DefaultInitialBalance = "1000.00"

	// DefaultDepositCeiling is the per-operation deposit cap. Caller-side
	// policy, not a ledger invariant.
	DefaultDepositCeiling = "10000.00"

	// DefaultHistoryLimit is the page size for transaction history.
	DefaultHistoryLimit = 50

	// SummaryCacheTTL is how long wallet summaries stay cached.
	SummaryCacheTTL = 30 * time.Second
)
