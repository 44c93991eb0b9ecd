package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/betwallet/internal/adapter/http/dto"
)

func TestDiceGame(t *testing.T) {
	// A loaded die: every roll is a 4.
	s := newStack(t, func() int { return 4 })
	ctx := context.Background()

	t.Run("winning single pick pays six times the stake", func(t *testing.T) {
		s.db.TruncateAll(ctx)
		s.do(t, http.MethodPost, "/api/v1/wallet", "user-1", nil, nil)

		var resp dto.PlayDiceResponse
		w := s.do(t, http.MethodPost, "/api/v1/games/dice/play", "user-1",
			map[string]any{"amount": "50", "bet_type": "single", "bet_value": 4}, &resp)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		if resp.Game == nil || resp.Game.Status != "won" || resp.Game.DiceResult != 4 {
			t.Fatalf("unexpected game: %+v", resp.Game)
		}
		if !resp.Game.PayoutAmount.Equal(decimal.RequireFromString("300")) {
			t.Errorf("payout=%s, expected 300", resp.Game.PayoutAmount)
		}

		// 1000 - 50 stake + 300 payout.
		wallet, _ := s.walletRepo.GetByUserID(ctx, "user-1")
		if !s.db.WalletBalance(ctx, wallet.ID).Equal(decimal.RequireFromString("1250")) {
			t.Errorf("balance=%s, expected 1250", s.db.WalletBalance(ctx, wallet.ID))
		}
	})

	t.Run("losing pick only costs the stake", func(t *testing.T) {
		s.db.TruncateAll(ctx)
		s.do(t, http.MethodPost, "/api/v1/wallet", "user-1", nil, nil)

		var resp dto.PlayDiceResponse
		s.do(t, http.MethodPost, "/api/v1/games/dice/play", "user-1",
			map[string]any{"amount": "50", "bet_type": "single", "bet_value": 2}, &resp)

		if resp.Game == nil || resp.Game.Status != "lost" {
			t.Fatalf("unexpected game: %+v", resp.Game)
		}
		if !resp.Game.PayoutAmount.IsZero() {
			t.Errorf("lost payout=%s, expected zero", resp.Game.PayoutAmount)
		}

		wallet, _ := s.walletRepo.GetByUserID(ctx, "user-1")
		if !s.db.WalletBalance(ctx, wallet.ID).Equal(decimal.RequireFromString("950")) {
			t.Errorf("balance=%s, expected 950", s.db.WalletBalance(ctx, wallet.ID))
		}
	})

	t.Run("even bet pays double on a 4", func(t *testing.T) {
		s.db.TruncateAll(ctx)
		s.do(t, http.MethodPost, "/api/v1/wallet", "user-1", nil, nil)

		var resp dto.PlayDiceResponse
		s.do(t, http.MethodPost, "/api/v1/games/dice/play", "user-1",
			map[string]any{"amount": "50", "bet_type": "even"}, &resp)

		if resp.Game == nil || resp.Game.Status != "won" {
			t.Fatalf("unexpected game: %+v", resp.Game)
		}
		if !resp.Game.PayoutAmount.Equal(decimal.RequireFromString("100")) {
			t.Errorf("payout=%s, expected 100", resp.Game.PayoutAmount)
		}
	})

	t.Run("invalid single pick is rejected", func(t *testing.T) {
		s.db.TruncateAll(ctx)
		s.do(t, http.MethodPost, "/api/v1/wallet", "user-1", nil, nil)

		var resp dto.PlayDiceResponse
		w := s.do(t, http.MethodPost, "/api/v1/games/dice/play", "user-1",
			map[string]any{"amount": "50", "bet_type": "single", "bet_value": 7}, &resp)
		if w.Code != http.StatusOK || resp.Success {
			t.Fatalf("expected rejection with 200, got code=%d body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("history lists played rounds", func(t *testing.T) {
		s.db.TruncateAll(ctx)
		s.do(t, http.MethodPost, "/api/v1/wallet", "user-1", nil, nil)
		s.do(t, http.MethodPost, "/api/v1/games/dice/play", "user-1",
			map[string]any{"amount": "10", "bet_type": "odd"}, nil)
		s.do(t, http.MethodPost, "/api/v1/games/dice/play", "user-1",
			map[string]any{"amount": "10", "bet_type": "even"}, nil)

		var resp dto.ListDiceGamesResponse
		w := s.do(t, http.MethodGet, "/api/v1/games/dice/history", "user-1", nil, &resp)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
		if len(resp.Games) != 2 {
			t.Fatalf("expected 2 games, got %d", len(resp.Games))
		}
	})
}
