package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AuditUseCase verifies ledger integrity by replay: starting from zero,
// applying every COMPLETED entry in creation order must reproduce each
// stored BalanceAfter snapshot and the wallet's current balance. A
// mismatch means the locking discipline was violated somewhere; it is
// reported, never repaired.
type AuditUseCase struct {
	walletRepo WalletRepository
	txnRepo    TransactionRepository
}

// NewAuditUseCase creates a new AuditUseCase.
func NewAuditUseCase(walletRepo WalletRepository, txnRepo TransactionRepository) *AuditUseCase {
	return &AuditUseCase{
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
	}
}

// WalletAuditResult is the outcome of auditing one wallet.
type WalletAuditResult struct {
	WalletID        string
	UserID          string
	RecordedBalance decimal.Decimal
	ReplayedBalance decimal.Decimal
	EntryCount      int
	Consistent      bool
	Problems        []string
	CheckedAt       time.Time
}

// AuditWallet replays one wallet's ledger.
func (uc *AuditUseCase) AuditWallet(ctx context.Context, walletID string) (*WalletAuditResult, error) {
	wallet, err := uc.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.txnRepo.ListByWalletAscending(ctx, walletID)
	if err != nil {
		return nil, err
	}

	result := &WalletAuditResult{
		WalletID:        wallet.ID,
		UserID:          wallet.UserID,
		RecordedBalance: wallet.Balance,
		EntryCount:      len(entries),
		CheckedAt:       time.Now().UTC(),
	}

	running := decimal.Zero
	for i, entry := range entries {
		running = running.Add(entry.Signed())

		if !entry.BalanceAfter.Equal(running) {
			result.Problems = append(result.Problems, fmt.Sprintf(
				"entry %d (%s): balance_after=%s, replayed=%s",
				i, entry.ID, entry.BalanceAfter, running,
			))
		}
	}

	result.ReplayedBalance = running

	if !running.Equal(wallet.Balance) {
		result.Problems = append(result.Problems, fmt.Sprintf(
			"final balance: recorded=%s, replayed=%s", wallet.Balance, running,
		))
	}

	result.Consistent = len(result.Problems) == 0

	return result, nil
}

// AuditReport is a fleet-wide consistency report.
type AuditReport struct {
	TotalWallets      int
	ConsistentWallets int
	Discrepancies     []*WalletAuditResult
	CheckedAt         time.Time
}

// AuditAll replays every wallet and collects discrepancies.
func (uc *AuditUseCase) AuditAll(ctx context.Context) (*AuditReport, error) {
	const pageSize = 500

	report := &AuditReport{CheckedAt: time.Now().UTC()}

	for offset := 0; ; offset += pageSize {
		wallets, err := uc.walletRepo.List(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}

		if len(wallets) == 0 {
			break
		}

		for _, wallet := range wallets {
			result, err := uc.AuditWallet(ctx, wallet.ID)
			if err != nil {
				return nil, fmt.Errorf("auditing wallet %s: %w", wallet.ID, err)
			}

			report.TotalWallets++
			if result.Consistent {
				report.ConsistentWallets++
			} else {
				report.Discrepancies = append(report.Discrepancies, result)
			}
		}

		if len(wallets) < pageSize {
			break
		}
	}

	return report, nil
}
