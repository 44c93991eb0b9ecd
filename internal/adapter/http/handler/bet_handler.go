package handler

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/iho/betwallet/internal/adapter/http/dto"
	"github.com/iho/betwallet/internal/adapter/http/middleware"
	"github.com/iho/betwallet/internal/domain"
	"github.com/iho/betwallet/internal/usecase"
)

// BetService defines the behavior needed by BetHandler.
type BetService interface {
	PlaceBet(ctx context.Context, input usecase.PlaceBetInput) (*domain.Bet, usecase.OperationResult)
	SettleBet(ctx context.Context, betID string, outcome domain.BetStatus) (*domain.Bet, error)
	GetBet(ctx context.Context, id string) (*domain.Bet, error)
	ListBets(ctx context.Context, input usecase.ListBetsInput) ([]*domain.Bet, error)
}

// BetHandler handles bet-related HTTP requests.
type BetHandler struct {
	betUC BetService
}

// NewBetHandler creates a new BetHandler.
func NewBetHandler(betUC BetService) *BetHandler {
	return &BetHandler{betUC: betUC}
}

// Place places a bet for the calling user.
func (h *BetHandler) Place(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	bet, res := h.betUC.PlaceBet(r.Context(), req.ToUseCaseInput(userID, clientIP(r)))
	if !res.Success {
		writeJSON(w, http.StatusOK, dto.PlaceBetResponse{
			Success: false,
			Message: res.Message,
		})
		return
	}

	out := dto.PlaceBetResponse{
		Success: true,
		Message: res.Message,
		Bet:     dto.BetFromDomain(bet),
	}
	if res.Transaction != nil {
		out.Transaction = dto.TransactionFromDomain(res.Transaction)
	}

	writeJSON(w, http.StatusCreated, out)
}

// Settle resolves a pending bet.
func (h *BetHandler) Settle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bet ID", "")
		return
	}

	var req dto.SettleBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	outcome := domain.BetStatus(req.Outcome)
	switch outcome {
	case domain.BetStatusWon, domain.BetStatusLost, domain.BetStatusVoid, domain.BetStatusCancelled:
	default:
		writeError(w, http.StatusBadRequest, "invalid outcome", req.Outcome)
		return
	}

	bet, err := h.betUC.SettleBet(r.Context(), id, outcome)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to settle bet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BetFromDomain(bet))
}

// Get retrieves a bet by ID.
func (h *BetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bet ID", "")
		return
	}

	bet, err := h.betUC.GetBet(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get bet", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BetFromDomain(bet))
}

// List lists the calling user's bets, most recent first.
func (h *BetHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	bets, err := h.betUC.ListBets(r.Context(), usecase.ListBetsInput{
		UserID: userID,
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list bets", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListBetsResponse{
		Bets:  dto.BetsFromDomain(bets),
		Total: int64(len(bets)),
	})
}

// clientIP resolves the caller address, preferring proxy headers.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
