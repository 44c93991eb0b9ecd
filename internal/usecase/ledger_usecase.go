package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/betwallet/internal/domain"
)

// LedgerUseCase is the ledger store: atomic, race-safe mutation of a
// wallet balance paired with an append-only transaction record. The
// balance is a denormalized running total; every mutation locks the
// wallet row, updates the balance and inserts exactly one entry whose
// BalanceAfter equals the new balance, all in one database transaction.
//
// Activation policy does not live here: the ledger mutates any wallet
// it is asked to. The wallet service layers that policy on top.
type LedgerUseCase struct {
	txManager  TransactionManager
	walletRepo WalletRepository
	txnRepo    TransactionRepository
	outboxRepo OutboxRepository
	idGen      IDGenerator
	retrier    Retrier
}

// NewLedgerUseCase creates a new LedgerUseCase. outboxRepo and retrier
// may be nil.
func NewLedgerUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	txnRepo TransactionRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:  txManager,
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
		outboxRepo: outboxRepo,
		idGen:      idGen,
		retrier:    retrier,
	}
}

// OpenWalletInput represents input for creating a wallet with its
// opening-balance entry.
type OpenWalletInput struct {
	UserID         string
	Currency       string
	InitialBalance decimal.Decimal
}

// MutationInput represents input for a single debit or credit.
type MutationInput struct {
	WalletID    string
	Amount      decimal.Decimal
	Category    domain.TransactionCategory
	Description string
	ReferenceID string
}

// OpenWallet creates a wallet and, when the opening balance is positive,
// records the opening CREDIT entry in the same transaction, so the audit
// log reconciles to the balance from creation onward. A wallet that
// already exists for the user surfaces as domain.ErrWalletExists via the
// unique constraint on user_id.
func (uc *LedgerUseCase) OpenWallet(ctx context.Context, input OpenWalletInput) (*domain.Wallet, *domain.Transaction, error) {
	if input.InitialBalance.IsNegative() {
		return nil, nil, domain.ErrInvalidAmount
	}
	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	wallet := &domain.Wallet{
		ID:        uc.idGen.Generate(),
		UserID:    input.UserID,
		Balance:   input.InitialBalance,
		Currency:  input.Currency,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.walletRepo.Create(ctx, tx, wallet); err != nil {
		return nil, nil, err
	}

	var opening *domain.Transaction
	if input.InitialBalance.IsPositive() {
		opening = &domain.Transaction{
			ID:           uc.idGen.Generate(),
			WalletID:     wallet.ID,
			Type:         domain.TransactionTypeCredit,
			Category:     domain.CategoryOpeningBalance,
			Amount:       input.InitialBalance,
			BalanceAfter: input.InitialBalance,
			Description:  "Initial deposit",
			Status:       domain.TransactionStatusCompleted,
			CreatedAt:    now,
		}
		if err := uc.txnRepo.Create(ctx, tx, opening); err != nil {
			return nil, nil, err
		}
	}

	if err := uc.recordEvent(ctx, tx, wallet.ID, domain.EventTypeWalletCreated, map[string]any{
		"wallet_id": wallet.ID,
		"user_id":   wallet.UserID,
		"balance":   wallet.Balance.String(),
	}, now); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return wallet, opening, nil
}

// Debit atomically decrements a wallet balance and records a COMPLETED
// DEBIT entry. The non-negative check happens under the row lock; two
// concurrent debits can never both pass it and overdraw.
func (uc *LedgerUseCase) Debit(ctx context.Context, input MutationInput) (*domain.Transaction, error) {
	return uc.mutate(ctx, domain.TransactionTypeDebit, input)
}

// Credit atomically increments a wallet balance and records a COMPLETED
// CREDIT entry. No upper bound is enforced at this layer.
func (uc *LedgerUseCase) Credit(ctx context.Context, input MutationInput) (*domain.Transaction, error) {
	return uc.mutate(ctx, domain.TransactionTypeCredit, input)
}

func (uc *LedgerUseCase) mutate(ctx context.Context, txnType domain.TransactionType, input MutationInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var txn *domain.Transaction

	op := func() error {
		t, err := uc.mutateOnce(ctx, txnType, input)
		if err != nil {
			return err
		}
		txn = t

		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, op)
	} else {
		err = op()
	}

	if err != nil {
		return nil, err
	}

	return txn, nil
}

func (uc *LedgerUseCase) mutateOnce(ctx context.Context, txnType domain.TransactionType, input MutationInput) (*domain.Transaction, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the wallet row for the duration of the atomic unit.
	wallet, err := uc.walletRepo.GetByIDForUpdate(ctx, tx, input.WalletID)
	if err != nil {
		return nil, err
	}

	// Enforced under the lock so a deactivation racing a mutation
	// cannot slip through the service-layer precheck.
	if !wallet.IsActive {
		return nil, domain.ErrWalletInactive
	}

	var newBalance decimal.Decimal
	if txnType == domain.TransactionTypeDebit {
		if err := wallet.ValidateDebit(input.Amount); err != nil {
			return nil, err
		}
		newBalance = wallet.ApplyDebit(input.Amount)
	} else {
		if err := wallet.ValidateCredit(input.Amount); err != nil {
			return nil, err
		}
		newBalance = wallet.ApplyCredit(input.Amount)
	}

	now := time.Now().UTC()

	if err := uc.walletRepo.UpdateBalance(ctx, tx, wallet.ID, newBalance, now); err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		ID:           uc.idGen.Generate(),
		WalletID:     wallet.ID,
		Type:         txnType,
		Category:     input.Category,
		Amount:       input.Amount,
		BalanceAfter: newBalance,
		Description:  input.Description,
		Status:       domain.TransactionStatusCompleted,
		ReferenceID:  input.ReferenceID,
		CreatedAt:    now,
	}

	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := uc.txnRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	eventType := domain.EventTypeWalletCredit
	if txnType == domain.TransactionTypeDebit {
		eventType = domain.EventTypeWalletDebit
	}

	if err := uc.recordEvent(ctx, tx, wallet.ID, eventType, map[string]any{
		"wallet_id":      wallet.ID,
		"transaction_id": txn.ID,
		"type":           string(txn.Type),
		"category":       string(txn.Category),
		"amount":         txn.Amount.String(),
		"balance_after":  txn.BalanceAfter.String(),
	}, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}

func (uc *LedgerUseCase) recordEvent(ctx context.Context, tx Transaction, walletID, eventType string, payload map[string]any, now time.Time) error {
	if uc.outboxRepo == nil {
		return nil
	}

	return uc.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   walletID,
		AggregateType: domain.AggregateTypeWallet,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     now,
	})
}

// TotalCredited returns the sum of COMPLETED credit entries.
func (uc *LedgerUseCase) TotalCredited(ctx context.Context, walletID string) (decimal.Decimal, error) {
	return uc.txnRepo.SumByType(ctx, walletID, domain.TransactionTypeCredit)
}

// TotalDebited returns the sum of COMPLETED debit entries.
func (uc *LedgerUseCase) TotalDebited(ctx context.Context, walletID string) (decimal.Decimal, error) {
	return uc.txnRepo.SumByType(ctx, walletID, domain.TransactionTypeDebit)
}
