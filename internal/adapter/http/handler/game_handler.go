package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/betwallet/internal/adapter/http/dto"
	"github.com/iho/betwallet/internal/adapter/http/middleware"
	"github.com/iho/betwallet/internal/domain"
	"github.com/iho/betwallet/internal/usecase"
)

// DiceGameService defines the behavior needed by GameHandler.
type DiceGameService interface {
	Play(ctx context.Context, input usecase.PlayDiceInput) (*domain.DiceGame, usecase.OperationResult)
	History(ctx context.Context, userID string, limit, offset int) ([]*domain.DiceGame, error)
}

// GameHandler handles dice game HTTP requests.
type GameHandler struct {
	gameUC DiceGameService
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(gameUC DiceGameService) *GameHandler {
	return &GameHandler{gameUC: gameUC}
}

// Play runs one round for the calling user.
func (h *GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	var req dto.PlayDiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	game, res := h.gameUC.Play(r.Context(), req.ToUseCaseInput(userID))
	if !res.Success {
		writeJSON(w, http.StatusOK, dto.PlayDiceResponse{
			Success: false,
			Message: res.Message,
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.PlayDiceResponse{
		Success: true,
		Message: res.Message,
		Game:    dto.DiceGameFromDomain(game),
	})
}

// History lists the calling user's recent rounds.
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user identity", "")
		return
	}

	games, err := h.gameUC.History(r.Context(), userID,
		parseIntQuery(r, "limit", 20),
		parseIntQuery(r, "offset", 0),
	)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list games", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListDiceGamesResponse{
		Games: dto.DiceGamesFromDomain(games),
		Total: int64(len(games)),
	})
}
