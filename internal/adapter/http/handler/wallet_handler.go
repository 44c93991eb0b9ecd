package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/betwallet/internal/adapter/http/dto"
	"github.com/iho/betwallet/internal/adapter/http/middleware"
	"github.com/iho/betwallet/internal/domain"
	"github.com/iho/betwallet/internal/usecase"
)

// WalletService defines the behavior needed by WalletHandler.
type WalletService interface {
	CreateWalletForUser(ctx context.Context, userID string) (*domain.Wallet, bool, error)
	GetWalletSummary(ctx context.Context, userID string) (*domain.WalletSummary, error)
	GetWalletStats(ctx context.Context, userID string) (*domain.WalletStats, error)
	GetTransactionHistory(ctx context.Context, userID string, limit int) ([]*domain.Transaction, error)
	CheckBalance(ctx context.Context, userID string, amount decimal.Decimal) (*domain.BalanceCheck, error)
	Deposit(ctx context.Context, userID string, amount decimal.Decimal) usecase.OperationResult
	Withdraw(ctx context.Context, userID string, amount decimal.Decimal) usecase.OperationResult
	SetWalletActive(ctx context.Context, userID string, active bool) error
}

// WalletHandler handles wallet-related HTTP requests.
type WalletHandler struct {
	walletUC WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletUC WalletService) *WalletHandler {
	return &WalletHandler{walletUC: walletUC}
}

// Create opens a wallet for the calling user. Calling it again returns
// the existing wallet with 200 instead of 201.
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	wallet, created, err := h.walletUC.CreateWalletForUser(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create wallet", err.Error())
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	writeJSON(w, status, dto.WalletFromDomain(wallet))
}

// Summary returns the dashboard aggregate for the calling user.
func (h *WalletHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	summary, err := h.walletUC.GetWalletSummary(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get wallet summary", err.Error())
		return
	}

	if summary == nil {
		writeError(w, http.StatusNotFound, "wallet not found", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletSummaryFromDomain(summary))
}

// Stats returns betting activity stats for the calling user.
func (h *WalletHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	stats, err := h.walletUC.GetWalletStats(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get wallet stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.WalletStatsFromDomain(stats))
}

// Transactions returns the most-recent-first page of ledger entries.
func (h *WalletHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	limit := parseIntQuery(r, "limit", 0)

	transactions, err := h.walletUC.GetTransactionHistory(r.Context(), userID, limit)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(transactions),
		Total:        int64(len(transactions)),
	})
}

// CheckBalance answers whether the wallet covers the amount in the
// query string. Used by clients as a preflight before placing bets.
func (h *WalletHandler) CheckBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	check, err := h.walletUC.CheckBalance(r.Context(), userID, amount)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to check balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CheckBalanceFromDomain(check))
}

// Deposit adds funds to the calling user's wallet.
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	res := h.walletUC.Deposit(r.Context(), userID, req.Amount)

	// Expected business failures still answer 200 with success=false.
	writeJSON(w, http.StatusOK, dto.OperationFromResult(res))
}

// Withdraw removes funds from the calling user's wallet.
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	var req dto.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	res := h.walletUC.Withdraw(r.Context(), userID, req.Amount)

	writeJSON(w, http.StatusOK, dto.OperationFromResult(res))
}

// SetActive toggles the calling user's wallet activation state.
func (h *WalletHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	var req dto.SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.walletUC.SetWalletActive(r.Context(), userID, req.Active); err != nil {
		writeError(w, mapDomainError(err), "failed to update wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"active": req.Active})
}
