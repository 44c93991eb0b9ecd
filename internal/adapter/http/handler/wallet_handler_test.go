package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/betwallet/internal/adapter/http/dto"
	"github.com/iho/betwallet/internal/domain"
	"github.com/iho/betwallet/internal/usecase"
)

type walletServiceStub struct {
	createFn       func(ctx context.Context, userID string) (*domain.Wallet, bool, error)
	summaryFn      func(ctx context.Context, userID string) (*domain.WalletSummary, error)
	statsFn        func(ctx context.Context, userID string) (*domain.WalletStats, error)
	transactionsFn func(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error)
	checkBalanceFn func(ctx context.Context, userID string, amount decimal.Decimal) (*domain.BalanceCheck, error)
	depositFn      func(ctx context.Context, userID string, amount decimal.Decimal) usecase.OperationResult
	withdrawFn     func(ctx context.Context, userID string, amount decimal.Decimal) usecase.OperationResult
	setActiveFn    func(ctx context.Context, userID string, active bool) error
}

func (s *walletServiceStub) CreateWalletForUser(ctx context.Context, userID string) (*domain.Wallet, bool, error) {
	return s.createFn(ctx, userID)
}

func (s *walletServiceStub) GetWalletSummary(ctx context.Context, userID string) (*domain.WalletSummary, error) {
	return s.summaryFn(ctx, userID)
}

func (s *walletServiceStub) GetWalletStats(ctx context.Context, userID string) (*domain.WalletStats, error) {
	return s.statsFn(ctx, userID)
}

func (s *walletServiceStub) GetTransactionHistory(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error) {
	return s.transactionsFn(ctx, userID, limit)
}

func (s *walletServiceStub) CheckBalance(ctx context.Context, userID string, amount decimal.Decimal) (*domain.BalanceCheck, error) {
	return s.checkBalanceFn(ctx, userID, amount)
}

func (s *walletServiceStub) Deposit(ctx context.Context, userID string, amount decimal.Decimal) usecase.OperationResult {
	return s.depositFn(ctx, userID, amount)
}

func (s *walletServiceStub) Withdraw(ctx context.Context, userID string, amount decimal.Decimal) usecase.OperationResult {
	return s.withdrawFn(ctx, userID, amount)
}

func (s *walletServiceStub) SetWalletActive(ctx context.Context, userID string, active bool) error {
	return s.setActiveFn(ctx, userID, active)
}

func TestWalletHandler_Create_New(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		createFn: func(ctx context.Context, userID string) (*domain.Wallet, bool, error) {
			if userID != "user-1" {
				t.Fatalf("expected user-1, got %s", userID)
			}
			return &domain.Wallet{ID: "wal-1", UserID: userID, Balance: decimal.RequireFromString("1000.00"), IsActive: true}, true, nil
		},
	})

	req := withUser(httptest.NewRequest(http.MethodPost, "/wallet", nil), "user-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.WalletResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "wal-1" || !resp.Balance.Equal(decimal.RequireFromString("1000.00")) {
		t.Fatalf("unexpected wallet: %+v", resp)
	}
}

func TestWalletHandler_Create_Existing(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		createFn: func(ctx context.Context, userID string) (*domain.Wallet, bool, error) {
			return &domain.Wallet{ID: "wal-1", UserID: userID}, false, nil
		},
	})

	req := withUser(httptest.NewRequest(http.MethodPost, "/wallet", nil), "user-1")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for existing wallet, got %d", rec.Code)
	}
}

func TestWalletHandler_Create_NoIdentity(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		createFn: func(ctx context.Context, userID string) (*domain.Wallet, bool, error) {
			t.Fatal("CreateWalletForUser should not be called without identity")
			return nil, false, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/wallet", nil)
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestWalletHandler_Summary(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		summaryFn: func(ctx context.Context, userID string) (*domain.WalletSummary, error) {
			return &domain.WalletSummary{
				WalletID:         "wal-1",
				UserID:           userID,
				Balance:          decimal.RequireFromString("800"),
				TransactionCount: 3,
			}, nil
		},
	})

	req := withUser(httptest.NewRequest(http.MethodGet, "/wallet/summary", nil), "user-1")
	rec := httptest.NewRecorder()

	handler.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.WalletSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.WalletID != "wal-1" || resp.TransactionCount != 3 {
		t.Fatalf("unexpected summary: %+v", resp)
	}
}

func TestWalletHandler_Summary_NoWallet(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		summaryFn: func(ctx context.Context, userID string) (*domain.WalletSummary, error) {
			return nil, nil
		},
	})

	req := withUser(httptest.NewRequest(http.MethodGet, "/wallet/summary", nil), "user-1")
	rec := httptest.NewRecorder()

	handler.Summary(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestWalletHandler_Stats(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		statsFn: func(ctx context.Context, userID string) (*domain.WalletStats, error) {
			return &domain.WalletStats{
				Balance:      decimal.RequireFromString("500"),
				TotalBets:    10,
				TotalWins:    4,
				TotalWagered: decimal.RequireFromString("200"),
				WinRate:      decimal.RequireFromString("40"),
			}, nil
		},
	})

	req := withUser(httptest.NewRequest(http.MethodGet, "/wallet/stats", nil), "user-1")
	rec := httptest.NewRecorder()

	handler.Stats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.WalletStatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalBets != 10 || resp.TotalWins != 4 {
		t.Fatalf("unexpected stats: %+v", resp)
	}
}

func TestWalletHandler_Transactions(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		transactionsFn: func(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error) {
			if limit != 5 {
				t.Fatalf("expected limit=5, got %d", limit)
			}
			return []*domain.Transaction{
				{ID: "txn-2", Type: domain.TransactionTypeDebit, Category: domain.CategoryBetStake},
				{ID: "txn-1", Type: domain.TransactionTypeCredit, Category: domain.CategoryOpeningBalance},
			}, nil
		},
	})

	req := withUser(httptest.NewRequest(http.MethodGet, "/wallet/transactions?limit=5", nil), "user-1")
	rec := httptest.NewRecorder()

	handler.Transactions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListTransactionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Transactions) != 2 || resp.Transactions[0].ID != "txn-2" {
		t.Fatalf("unexpected transactions: %+v", resp.Transactions)
	}
}

func TestWalletHandler_CheckBalance(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		checkBalanceFn: func(ctx context.Context, userID string, amount decimal.Decimal) (*domain.BalanceCheck, error) {
			if !amount.Equal(decimal.RequireFromString("250")) {
				t.Fatalf("expected amount 250, got %s", amount)
			}
			return &domain.BalanceCheck{Sufficient: false, Balance: decimal.RequireFromString("100"), Required: amount}, nil
		},
	})

	req := withUser(httptest.NewRequest(http.MethodGet, "/wallet/check-balance?amount=250", nil), "user-1")
	rec := httptest.NewRecorder()

	handler.CheckBalance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.CheckBalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.HasSufficientBalance || resp.Message != "Insufficient balance" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !resp.CurrentBalance.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("expected balance 100, got %s", resp.CurrentBalance)
	}
}

func TestWalletHandler_CheckBalance_BadAmount(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		checkBalanceFn: func(ctx context.Context, userID string, amount decimal.Decimal) (*domain.BalanceCheck, error) {
			t.Fatal("CheckBalance should not be called for an unparseable amount")
			return nil, nil
		},
	})

	req := withUser(httptest.NewRequest(http.MethodGet, "/wallet/check-balance?amount=abc", nil), "user-1")
	rec := httptest.NewRecorder()

	handler.CheckBalance(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWalletHandler_Deposit_Success(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		depositFn: func(ctx context.Context, userID string, amount decimal.Decimal) usecase.OperationResult {
			if !amount.Equal(decimal.RequireFromString("100")) {
				t.Fatalf("expected amount 100, got %s", amount)
			}
			return usecase.OperationResult{
				Success:     true,
				Message:     "Successfully added 100 to your wallet",
				Transaction: &domain.Transaction{ID: "txn-1", BalanceAfter: decimal.RequireFromString("1100")},
			}
		},
	})

	body, _ := json.Marshal(dto.DepositRequest{Amount: decimal.RequireFromString("100")})
	req := withUser(httptest.NewRequest(http.MethodPost, "/wallet/deposit", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	handler.Deposit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.OperationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.Transaction == nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestWalletHandler_Deposit_BusinessFailure(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		depositFn: func(ctx context.Context, userID string, amount decimal.Decimal) usecase.OperationResult {
			return usecase.OperationResult{Success: false, Message: "Maximum deposit amount is 10000.00"}
		},
	})

	body, _ := json.Marshal(dto.DepositRequest{Amount: decimal.RequireFromString("50000")})
	req := withUser(httptest.NewRequest(http.MethodPost, "/wallet/deposit", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	handler.Deposit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with success=false, got %d", rec.Code)
	}

	var resp dto.OperationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Success || resp.Message != "Maximum deposit amount is 10000.00" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestWalletHandler_Withdraw_InvalidJSON(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		withdrawFn: func(ctx context.Context, userID string, amount decimal.Decimal) usecase.OperationResult {
			t.Fatal("Withdraw should not be called for invalid payload")
			return usecase.OperationResult{}
		},
	})

	req := withUser(httptest.NewRequest(http.MethodPost, "/wallet/withdraw", bytes.NewBufferString("{invalid json")), "user-1")
	rec := httptest.NewRecorder()

	handler.Withdraw(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWalletHandler_SetActive(t *testing.T) {
	var captured bool
	handler := NewWalletHandler(&walletServiceStub{
		setActiveFn: func(ctx context.Context, userID string, active bool) error {
			captured = active
			return nil
		},
	})

	body, _ := json.Marshal(dto.SetActiveRequest{Active: false})
	req := withUser(httptest.NewRequest(http.MethodPut, "/wallet/active", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	handler.SetActive(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured {
		t.Fatal("expected active=false to be forwarded")
	}
}

func TestWalletHandler_SetActive_WalletMissing(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		setActiveFn: func(ctx context.Context, userID string, active bool) error {
			return domain.ErrWalletNotFound
		},
	})

	body, _ := json.Marshal(dto.SetActiveRequest{Active: true})
	req := withUser(httptest.NewRequest(http.MethodPut, "/wallet/active", bytes.NewReader(body)), "user-1")
	rec := httptest.NewRecorder()

	handler.SetActive(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestWalletHandler_Stats_ServiceError(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		statsFn: func(ctx context.Context, userID string) (*domain.WalletStats, error) {
			return nil, errors.New("db error")
		},
	})

	req := withUser(httptest.NewRequest(http.MethodGet, "/wallet/stats", nil), "user-1")
	rec := httptest.NewRecorder()

	handler.Stats(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
