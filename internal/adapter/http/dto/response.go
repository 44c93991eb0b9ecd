package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/betwallet/internal/domain"
	"github.com/iho/betwallet/internal/usecase"
)

// WalletResponse represents a wallet in API responses.
type WalletResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// WalletFromDomain converts domain wallet to response.
func WalletFromDomain(w *domain.Wallet) *WalletResponse {
	return &WalletResponse{
		ID:        w.ID,
		UserID:    w.UserID,
		Balance:   w.Balance,
		Currency:  w.Currency,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// WalletSummaryResponse represents the dashboard aggregate.
type WalletSummaryResponse struct {
	WalletID         string          `json:"wallet_id"`
	UserID           string          `json:"user_id"`
	Balance          decimal.Decimal `json:"balance"`
	Currency         string          `json:"currency"`
	TotalCredited    decimal.Decimal `json:"total_credited"`
	TotalDebited     decimal.Decimal `json:"total_debited"`
	TransactionCount int64           `json:"transaction_count"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
}

// WalletSummaryFromDomain converts domain summary to response.
func WalletSummaryFromDomain(s *domain.WalletSummary) *WalletSummaryResponse {
	return &WalletSummaryResponse{
		WalletID:         s.WalletID,
		UserID:           s.UserID,
		Balance:          s.Balance,
		Currency:         s.Currency,
		TotalCredited:    s.TotalCredited,
		TotalDebited:     s.TotalDebited,
		TransactionCount: s.TransactionCount,
		IsActive:         s.IsActive,
		CreatedAt:        s.CreatedAt,
	}
}

// WalletStatsResponse represents betting activity stats.
type WalletStatsResponse struct {
	Balance       decimal.Decimal `json:"balance"`
	TotalBets     int64           `json:"total_bets"`
	TotalWins     int64           `json:"total_wins"`
	TotalWagered  decimal.Decimal `json:"total_wagered"`
	TotalWinnings decimal.Decimal `json:"total_winnings"`
	WinRate       decimal.Decimal `json:"win_rate"`
}

// WalletStatsFromDomain converts domain stats to response.
func WalletStatsFromDomain(s *domain.WalletStats) *WalletStatsResponse {
	return &WalletStatsResponse{
		Balance:       s.Balance,
		TotalBets:     s.TotalBets,
		TotalWins:     s.TotalWins,
		TotalWagered:  s.TotalWagered,
		TotalWinnings: s.TotalWinnings,
		WinRate:       s.WinRate,
	}
}

// CheckBalanceResponse answers a balance preflight request.
type CheckBalanceResponse struct {
	HasSufficientBalance bool            `json:"has_sufficient_balance"`
	CurrentBalance       decimal.Decimal `json:"current_balance"`
	RequiredAmount       decimal.Decimal `json:"required_amount"`
	Message              string          `json:"message"`
}

// CheckBalanceFromDomain converts a domain balance check to response.
func CheckBalanceFromDomain(c *domain.BalanceCheck) *CheckBalanceResponse {
	message := "Sufficient balance"
	if !c.Sufficient {
		message = "Insufficient balance"
	}

	return &CheckBalanceResponse{
		HasSufficientBalance: c.Sufficient,
		CurrentBalance:       c.Balance,
		RequiredAmount:       c.Required,
		Message:              message,
	}
}

// TransactionResponse represents a ledger entry in API responses.
type TransactionResponse struct {
	ID           string          `json:"id"`
	WalletID     string          `json:"wallet_id"`
	Type         string          `json:"type"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`
	ReferenceID  string          `json:"reference_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:           t.ID,
		WalletID:     t.WalletID,
		Type:         string(t.Type),
		Category:     string(t.Category),
		Amount:       t.Amount,
		BalanceAfter: t.BalanceAfter,
		Description:  t.Description,
		Status:       string(t.Status),
		ReferenceID:  t.ReferenceID,
		CreatedAt:    t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse wraps a transaction page.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// OperationResponse is the uniform shape for balance-mutating
// operations.
type OperationResponse struct {
	Success     bool                 `json:"success"`
	Message     string               `json:"message"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// OperationFromResult converts a use case result to a response.
func OperationFromResult(res usecase.OperationResult) *OperationResponse {
	out := &OperationResponse{
		Success: res.Success,
		Message: res.Message,
	}
	if res.Transaction != nil {
		out.Transaction = TransactionFromDomain(res.Transaction)
	}
	return out
}

// BetResponse represents a bet in API responses.
type BetResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	EventID         string          `json:"event_id"`
	Type            string          `json:"type"`
	Stake           decimal.Decimal `json:"stake"`
	Odds            decimal.Decimal `json:"odds"`
	PotentialPayout decimal.Decimal `json:"potential_payout"`
	Status          string          `json:"status"`
	ActualPayout    decimal.Decimal `json:"actual_payout"`
	PlacedAt        time.Time       `json:"placed_at"`
	SettledAt       *time.Time      `json:"settled_at,omitempty"`
}

// BetFromDomain converts domain bet to response.
func BetFromDomain(b *domain.Bet) *BetResponse {
	return &BetResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		EventID:         b.EventID,
		Type:            string(b.Type),
		Stake:           b.Stake,
		Odds:            b.Odds,
		PotentialPayout: b.PotentialPayout,
		Status:          string(b.Status),
		ActualPayout:    b.ActualPayout,
		PlacedAt:        b.PlacedAt,
		SettledAt:       b.SettledAt,
	}
}

// BetsFromDomain converts domain bets to responses.
func BetsFromDomain(bets []*domain.Bet) []*BetResponse {
	result := make([]*BetResponse, len(bets))
	for i, b := range bets {
		result[i] = BetFromDomain(b)
	}
	return result
}

// ListBetsResponse wraps a bet page.
type ListBetsResponse struct {
	Bets  []*BetResponse `json:"bets"`
	Total int64          `json:"total"`
}

// PlaceBetResponse pairs the recorded bet with the operation outcome.
type PlaceBetResponse struct {
	Success     bool                 `json:"success"`
	Message     string               `json:"message"`
	Bet         *BetResponse         `json:"bet,omitempty"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// DiceGameResponse represents one dice round in API responses.
type DiceGameResponse struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	BetAmount    decimal.Decimal `json:"bet_amount"`
	BetType      string          `json:"bet_type"`
	BetValue     int             `json:"bet_value,omitempty"`
	DiceResult   int             `json:"dice_result"`
	PayoutAmount decimal.Decimal `json:"payout_amount"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// DiceGameFromDomain converts domain dice game to response.
func DiceGameFromDomain(g *domain.DiceGame) *DiceGameResponse {
	return &DiceGameResponse{
		ID:           g.ID,
		UserID:       g.UserID,
		BetAmount:    g.BetAmount,
		BetType:      string(g.BetType),
		BetValue:     g.BetValue,
		DiceResult:   g.DiceResult,
		PayoutAmount: g.PayoutAmount,
		Status:       string(g.Status),
		CreatedAt:    g.CreatedAt,
	}
}

// DiceGamesFromDomain converts domain dice games to responses.
func DiceGamesFromDomain(games []*domain.DiceGame) []*DiceGameResponse {
	result := make([]*DiceGameResponse, len(games))
	for i, g := range games {
		result[i] = DiceGameFromDomain(g)
	}
	return result
}

// ListDiceGamesResponse wraps a dice game page.
type ListDiceGamesResponse struct {
	Games []*DiceGameResponse `json:"games"`
	Total int64               `json:"total"`
}

// PlayDiceResponse pairs the recorded round with its outcome message.
type PlayDiceResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Game    *DiceGameResponse `json:"game,omitempty"`
}

// AuditResultResponse represents one wallet's replay outcome.
type AuditResultResponse struct {
	WalletID        string          `json:"wallet_id"`
	UserID          string          `json:"user_id"`
	RecordedBalance decimal.Decimal `json:"recorded_balance"`
	ReplayedBalance decimal.Decimal `json:"replayed_balance"`
	EntryCount      int             `json:"entry_count"`
	Consistent      bool            `json:"consistent"`
	Problems        []string        `json:"problems,omitempty"`
	CheckedAt       time.Time       `json:"checked_at"`
}

// AuditResultFromUseCase converts an audit result to a response.
func AuditResultFromUseCase(r *usecase.WalletAuditResult) *AuditResultResponse {
	return &AuditResultResponse{
		WalletID:        r.WalletID,
		UserID:          r.UserID,
		RecordedBalance: r.RecordedBalance,
		ReplayedBalance: r.ReplayedBalance,
		EntryCount:      r.EntryCount,
		Consistent:      r.Consistent,
		Problems:        r.Problems,
		CheckedAt:       r.CheckedAt,
	}
}

// AuditReportResponse represents a fleet-wide consistency report.
type AuditReportResponse struct {
	TotalWallets      int                    `json:"total_wallets"`
	ConsistentWallets int                    `json:"consistent_wallets"`
	Discrepancies     []*AuditResultResponse `json:"discrepancies,omitempty"`
	CheckedAt         time.Time              `json:"checked_at"`
}

// AuditReportFromUseCase converts an audit report to a response.
func AuditReportFromUseCase(r *usecase.AuditReport) *AuditReportResponse {
	out := &AuditReportResponse{
		TotalWallets:      r.TotalWallets,
		ConsistentWallets: r.ConsistentWallets,
		CheckedAt:         r.CheckedAt,
	}
	for _, d := range r.Discrepancies {
		out.Discrepancies = append(out.Discrepancies, AuditResultFromUseCase(d))
	}
	return out
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
