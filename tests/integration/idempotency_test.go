package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/betwallet/internal/adapter/http/dto"
	"github.com/iho/betwallet/tests/testutil"
)

// A retried mutation with the same Idempotency-Key must replay the first
// response instead of moving the balance twice.
func TestIdempotentDeposit(t *testing.T) {
	s := newStack(t, nil)
	ctx := context.Background()

	s.db.TruncateAll(ctx)
	s.do(t, http.MethodPost, "/api/v1/wallet", "user-1", nil, nil)

	key := testutil.GenerateID()
	body, _ := json.Marshal(map[string]string{"amount": "100"})

	send := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/wallet/deposit", bytes.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("X-User-ID", "user-1")
		r.Header.Set("Idempotency-Key", key)

		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, r)
		return w
	}

	first := send()
	if first.Code != http.StatusOK {
		t.Fatalf("first request: expected %d, got %d: %s", http.StatusOK, first.Code, first.Body.String())
	}

	second := send()
	if second.Code != first.Code {
		t.Fatalf("replay status=%d, expected %d", second.Code, first.Code)
	}

	var firstResp, secondResp dto.OperationResponse
	if err := json.Unmarshal(first.Body.Bytes(), &firstResp); err != nil {
		t.Fatalf("failed to parse first response: %v", err)
	}
	if err := json.Unmarshal(second.Body.Bytes(), &secondResp); err != nil {
		t.Fatalf("failed to parse second response: %v", err)
	}

	if !firstResp.Success || !secondResp.Success {
		t.Fatalf("both responses must succeed: %+v / %+v", firstResp, secondResp)
	}
	if firstResp.Transaction == nil || secondResp.Transaction == nil ||
		firstResp.Transaction.ID != secondResp.Transaction.ID {
		t.Fatal("replay must return the original transaction")
	}

	// The balance moved exactly once.
	wallet, err := s.walletRepo.GetByUserID(ctx, "user-1")
	if err != nil {
		t.Fatalf("failed to load wallet: %v", err)
	}
	if !s.db.WalletBalance(ctx, wallet.ID).Equal(decimal.RequireFromString("1100")) {
		t.Fatalf("balance=%s, expected 1100", s.db.WalletBalance(ctx, wallet.ID))
	}
}
