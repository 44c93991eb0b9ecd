package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/betwallet/internal/domain"
)

// OperationResult is the uniform shape the wallet service returns for
// business operations. Expected failures (insufficient funds, inactive
// wallet, missing wallet) become Success=false with a human-readable
// message; they never propagate as errors.
type OperationResult struct {
	Success     bool
	Message     string
	Transaction *domain.Transaction
}

func failure(message string) OperationResult {
	return OperationResult{Success: false, Message: message}
}

// WalletConfig carries caller-side policy for the wallet service.
type WalletConfig struct {
	Currency       string
	InitialBalance decimal.Decimal
	DepositCeiling decimal.Decimal
}

// DefaultWalletConfig returns the stock policy.
func DefaultWalletConfig() WalletConfig {
	return WalletConfig{
		Currency:       "USD",
		InitialBalance: decimal.RequireFromString(DefaultInitialBalance),
		DepositCeiling: decimal.RequireFromString(DefaultDepositCeiling),
	}
}

// WalletUseCase composes ledger operations into the business operations
// callers need. It owns activation policy (only ACTIVE wallets accept
// mutation) and deposit ceilings; the ledger underneath owns atomicity
// and the non-negative invariant.
type WalletUseCase struct {
	ledger     Ledger
	walletRepo WalletRepository
	txnRepo    TransactionRepository
	cache      Cache
	cfg        WalletConfig
}

// NewWalletUseCase creates a new WalletUseCase. cache may be nil.
func NewWalletUseCase(
	ledger Ledger,
	walletRepo WalletRepository,
	txnRepo TransactionRepository,
	cache Cache,
	cfg WalletConfig,
) *WalletUseCase {
	return &WalletUseCase{
		ledger:     ledger,
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
		cache:      cache,
		cfg:        cfg,
	}
}

// CreateWalletForUser creates a wallet with the configured opening
// balance. Idempotent: a second call for the same user returns the
// existing wallet with created=false and records nothing.
func (uc *WalletUseCase) CreateWalletForUser(ctx context.Context, userID string) (*domain.Wallet, bool, error) {
	wallet, _, err := uc.ledger.OpenWallet(ctx, OpenWalletInput{
		UserID:         userID,
		Currency:       uc.cfg.Currency,
		InitialBalance: uc.cfg.InitialBalance,
	})
	if err == nil {
		return wallet, true, nil
	}

	if !errors.Is(err, domain.ErrWalletExists) {
		return nil, false, err
	}

	existing, err := uc.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	return existing, false, nil
}

// ProcessBetPlacement debits a bet stake. The balance check here is a
// pre-check for a friendly message; the authoritative check is re-done
// inside the ledger under the row lock.
func (uc *WalletUseCase) ProcessBetPlacement(ctx context.Context, userID string, amount decimal.Decimal, referenceID string) OperationResult {
	wallet, res := uc.loadActiveWallet(ctx, userID)
	if wallet == nil {
		return res
	}

	if !wallet.HasSufficientBalance(amount) {
		return failure(fmt.Sprintf("Insufficient balance. Available: %s", wallet.Balance))
	}

	txn, err := uc.ledger.Debit(ctx, MutationInput{
		WalletID:    wallet.ID,
		Amount:      amount,
		Category:    domain.CategoryBetStake,
		Description: fmt.Sprintf("Bet placed - %s", amount),
		ReferenceID: referenceID,
	})
	if err != nil {
		return uc.mutationFailure(err)
	}

	uc.invalidateSummary(ctx, userID)

	return OperationResult{Success: true, Message: "Bet placed successfully", Transaction: txn}
}

// ProcessBetWinning credits winnings, tagging the entry with the
// originating bet for traceability.
func (uc *WalletUseCase) ProcessBetWinning(ctx context.Context, userID string, amount decimal.Decimal, betID string) OperationResult {
	wallet, res := uc.loadActiveWallet(ctx, userID)
	if wallet == nil {
		return res
	}

	description := fmt.Sprintf("Bet winning - %s", amount)
	if betID != "" {
		description += fmt.Sprintf(" (Bet #%s)", betID)
	}

	txn, err := uc.ledger.Credit(ctx, MutationInput{
		WalletID:    wallet.ID,
		Amount:      amount,
		Category:    domain.CategoryBetPayout,
		Description: description,
		ReferenceID: betID,
	})
	if err != nil {
		return uc.mutationFailure(err)
	}

	uc.invalidateSummary(ctx, userID)

	return OperationResult{Success: true, Message: "Winnings credited successfully", Transaction: txn}
}

// RefundBetStake returns a stake for a voided or cancelled bet.
func (uc *WalletUseCase) RefundBetStake(ctx context.Context, userID string, amount decimal.Decimal, betID string) OperationResult {
	wallet, res := uc.loadActiveWallet(ctx, userID)
	if wallet == nil {
		return res
	}

	txn, err := uc.ledger.Credit(ctx, MutationInput{
		WalletID:    wallet.ID,
		Amount:      amount,
		Category:    domain.CategoryBetRefund,
		Description: fmt.Sprintf("Bet refund - %s (Bet #%s)", amount, betID),
		ReferenceID: betID,
	})
	if err != nil {
		return uc.mutationFailure(err)
	}

	uc.invalidateSummary(ctx, userID)

	return OperationResult{Success: true, Message: "Stake refunded successfully", Transaction: txn}
}

// ReverseBetWinning claws back a payout that was credited for a round
// whose record could not be persisted. Compensation only; callers pair
// it with a stake refund so the round unwinds completely.
func (uc *WalletUseCase) ReverseBetWinning(ctx context.Context, userID string, amount decimal.Decimal, betID string) OperationResult {
	wallet, res := uc.loadActiveWallet(ctx, userID)
	if wallet == nil {
		return res
	}

	txn, err := uc.ledger.Debit(ctx, MutationInput{
		WalletID:    wallet.ID,
		Amount:      amount,
		Category:    domain.CategoryPayoutReversal,
		Description: fmt.Sprintf("Payout reversal - %s (Bet #%s)", amount, betID),
		ReferenceID: betID,
	})
	if err != nil {
		return uc.mutationFailure(err)
	}

	uc.invalidateSummary(ctx, userID)

	return OperationResult{Success: true, Message: "Payout reversed", Transaction: txn}
}

// Deposit adds funds, subject to the configured ceiling.
func (uc *WalletUseCase) Deposit(ctx context.Context, userID string, amount decimal.Decimal) OperationResult {
	if amount.GreaterThan(uc.cfg.DepositCeiling) {
		return failure(fmt.Sprintf("Maximum deposit amount is %s", uc.cfg.DepositCeiling))
	}

	wallet, res := uc.loadActiveWallet(ctx, userID)
	if wallet == nil {
		return res
	}

	txn, err := uc.ledger.Credit(ctx, MutationInput{
		WalletID:    wallet.ID,
		Amount:      amount,
		Category:    domain.CategoryDeposit,
		Description: fmt.Sprintf("Deposit - %s", amount),
	})
	if err != nil {
		return uc.mutationFailure(err)
	}

	uc.invalidateSummary(ctx, userID)

	return OperationResult{Success: true, Message: fmt.Sprintf("Successfully added %s to your wallet", amount), Transaction: txn}
}

// Withdraw removes funds.
func (uc *WalletUseCase) Withdraw(ctx context.Context, userID string, amount decimal.Decimal) OperationResult {
	wallet, res := uc.loadActiveWallet(ctx, userID)
	if wallet == nil {
		return res
	}

	if !wallet.HasSufficientBalance(amount) {
		return failure(fmt.Sprintf("Insufficient balance. Available: %s", wallet.Balance))
	}

	txn, err := uc.ledger.Debit(ctx, MutationInput{
		WalletID:    wallet.ID,
		Amount:      amount,
		Category:    domain.CategoryWithdrawal,
		Description: fmt.Sprintf("Withdrawal - %s", amount),
	})
	if err != nil {
		return uc.mutationFailure(err)
	}

	uc.invalidateSummary(ctx, userID)

	return OperationResult{Success: true, Message: fmt.Sprintf("Successfully withdrew %s from your wallet", amount), Transaction: txn}
}

// SetWalletActive toggles the ACTIVE/INACTIVE state.
func (uc *WalletUseCase) SetWalletActive(ctx context.Context, userID string, active bool) error {
	wallet, err := uc.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if err := uc.walletRepo.SetActive(ctx, wallet.ID, active, time.Now().UTC()); err != nil {
		return err
	}

	uc.invalidateSummary(ctx, userID)

	return nil
}

// CheckBalance reports whether the user's wallet covers amount. Clients
// call this before placing a bet for a friendly preflight; the
// authoritative check still happens inside the ledger under the lock.
func (uc *WalletUseCase) CheckBalance(ctx context.Context, userID string, amount decimal.Decimal) (*domain.BalanceCheck, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	wallet, err := uc.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.BalanceCheck{
		Sufficient: wallet.HasSufficientBalance(amount),
		Balance:    wallet.Balance,
		Required:   amount,
	}, nil
}

// GetWalletSummary returns the dashboard aggregate, or nil (no error)
// when the user has no wallet yet. Summaries are served from cache when
// fresh.
func (uc *WalletUseCase) GetWalletSummary(ctx context.Context, userID string) (*domain.WalletSummary, error) {
	if cached := uc.cachedSummary(ctx, userID); cached != nil {
		return cached, nil
	}

	wallet, err := uc.walletRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrWalletNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	totalCredited, err := uc.ledger.TotalCredited(ctx, wallet.ID)
	if err != nil {
		return nil, err
	}

	totalDebited, err := uc.ledger.TotalDebited(ctx, wallet.ID)
	if err != nil {
		return nil, err
	}

	count, err := uc.txnRepo.CountByWallet(ctx, wallet.ID)
	if err != nil {
		return nil, err
	}

	summary := &domain.WalletSummary{
		WalletID:         wallet.ID,
		UserID:           wallet.UserID,
		Balance:          wallet.Balance,
		Currency:         wallet.Currency,
		TotalCredited:    totalCredited,
		TotalDebited:     totalDebited,
		TransactionCount: count,
		IsActive:         wallet.IsActive,
		CreatedAt:        wallet.CreatedAt,
	}

	uc.storeSummary(ctx, userID, summary)

	return summary, nil
}

// GetWalletStats aggregates betting activity from transaction
// categories.
func (uc *WalletUseCase) GetWalletStats(ctx context.Context, userID string) (*domain.WalletStats, error) {
	wallet, err := uc.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	aggregates, err := uc.txnRepo.AggregateByCategory(ctx, wallet.ID)
	if err != nil {
		return nil, err
	}

	stakes := aggregates[domain.CategoryBetStake]
	payouts := aggregates[domain.CategoryBetPayout]

	stats := &domain.WalletStats{
		Balance:       wallet.Balance,
		TotalBets:     stakes.Count,
		TotalWins:     payouts.Count,
		TotalWagered:  stakes.Total,
		TotalWinnings: payouts.Total,
		WinRate:       decimal.Zero,
	}

	if stakes.Count > 0 {
		stats.WinRate = decimal.NewFromInt(payouts.Count).
			Div(decimal.NewFromInt(stakes.Count)).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	}

	return stats, nil
}

// GetTransactionHistory returns the most-recent-first page of entries,
// or an empty slice when the user has no wallet.
func (uc *WalletUseCase) GetTransactionHistory(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit, _ = domain.ValidatePagination(limit, 0)

	wallet, err := uc.walletRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrWalletNotFound) {
		return []*domain.Transaction{}, nil
	}
	if err != nil {
		return nil, err
	}

	return uc.txnRepo.ListByWallet(ctx, wallet.ID, limit, 0)
}

// loadActiveWallet resolves the user's wallet and applies activation
// policy. A nil wallet means the accompanying result should be returned
// as-is.
func (uc *WalletUseCase) loadActiveWallet(ctx context.Context, userID string) (*domain.Wallet, OperationResult) {
	wallet, err := uc.walletRepo.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrWalletNotFound) {
		return nil, failure("Wallet not found")
	}
	if err != nil {
		return nil, failure(err.Error())
	}

	if !wallet.IsActive {
		return nil, failure("Wallet is not active")
	}

	return wallet, OperationResult{}
}

func (uc *WalletUseCase) mutationFailure(err error) OperationResult {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return failure("Insufficient balance")
	case errors.Is(err, domain.ErrWalletInactive):
		return failure("Wallet is not active")
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooSmall),
		errors.Is(err, domain.ErrAmountTooLarge):
		return failure(err.Error())
	case errors.Is(err, domain.ErrWalletNotFound):
		return failure("Wallet not found")
	default:
		return failure(err.Error())
	}
}

func summaryCacheKey(userID string) string {
	return "wallet:summary:" + userID
}

func (uc *WalletUseCase) cachedSummary(ctx context.Context, userID string) *domain.WalletSummary {
	if uc.cache == nil {
		return nil
	}

	data, err := uc.cache.Get(ctx, summaryCacheKey(userID))
	if err != nil || len(data) == 0 {
		return nil
	}

	var summary domain.WalletSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil
	}

	return &summary
}

func (uc *WalletUseCase) storeSummary(ctx context.Context, userID string, summary *domain.WalletSummary) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return
	}

	// Best effort: a cold cache only costs a recompute.
	_ = uc.cache.Set(ctx, summaryCacheKey(userID), data, SummaryCacheTTL)
}

func (uc *WalletUseCase) invalidateSummary(ctx context.Context, userID string) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Delete(ctx, summaryCacheKey(userID))
}
