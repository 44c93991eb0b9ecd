package domain

import "time"

// Event types
const (
	EventTypeWalletCreated = "wallet.created"
	EventTypeWalletCredit  = "wallet.credited"
	EventTypeWalletDebit   = "wallet.debited"
	EventTypeBetPlaced     = "bet.placed"
	EventTypeBetSettled    = "bet.settled"
)

// Aggregate types
const (
	AggregateTypeWallet = "wallet"
	AggregateTypeBet    = "bet"
)

// OutboxEvent represents an event recorded atomically with a ledger
// mutation and published asynchronously.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// WalletMutatedEvent payload for credit/debit events.
type WalletMutatedEvent struct {
	WalletID      string `json:"wallet_id"`
	TransactionID string `json:"transaction_id"`
	Type          string `json:"type"`
	Category      string `json:"category"`
	Amount        string `json:"amount"`
	BalanceAfter  string `json:"balance_after"`
}

// BetSettledEvent payload
type BetSettledEvent struct {
	BetID  string `json:"bet_id"`
	UserID string `json:"user_id"`
	Status string `json:"status"`
	Payout string `json:"payout"`
}
