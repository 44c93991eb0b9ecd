package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/betwallet/internal/adapter/http/dto"
	"github.com/iho/betwallet/internal/usecase"
)

// AuditService defines the behavior needed by AuditHandler.
type AuditService interface {
	AuditWallet(ctx context.Context, walletID string) (*usecase.WalletAuditResult, error)
	AuditAll(ctx context.Context) (*usecase.AuditReport, error)
}

// AuditHandler handles ledger integrity checks.
type AuditHandler struct {
	auditUC AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditUC AuditService) *AuditHandler {
	return &AuditHandler{auditUC: auditUC}
}

// Wallet replays one wallet's ledger.
func (h *AuditHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing wallet ID", "")
		return
	}

	result, err := h.auditUC.AuditWallet(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to audit wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditResultFromUseCase(result))
}

// All replays every wallet and reports discrepancies.
func (h *AuditHandler) All(w http.ResponseWriter, r *http.Request) {
	report, err := h.auditUC.AuditAll(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to run audit", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditReportFromUseCase(report))
}
