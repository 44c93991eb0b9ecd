package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/betwallet/internal/domain"
	"github.com/iho/betwallet/internal/usecase"
)

func TestWalletFromDomain(t *testing.T) {
	now := time.Now()
	wallet := &domain.Wallet{
		ID:        "wal-1",
		UserID:    "user-1",
		Balance:   decimal.RequireFromString("1000.00"),
		Currency:  "USD",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	resp := WalletFromDomain(wallet)
	if resp.ID != wallet.ID || !resp.Balance.Equal(wallet.Balance) || !resp.IsActive {
		t.Fatalf("unexpected wallet response: %+v", resp)
	}
}

func TestWalletSummaryFromDomain(t *testing.T) {
	summary := &domain.WalletSummary{
		WalletID:         "wal-1",
		UserID:           "user-1",
		Balance:          decimal.RequireFromString("800"),
		Currency:         "USD",
		TotalCredited:    decimal.RequireFromString("1000"),
		TotalDebited:     decimal.RequireFromString("200"),
		TransactionCount: 3,
		IsActive:         true,
		CreatedAt:        time.Now(),
	}

	resp := WalletSummaryFromDomain(summary)
	if resp.WalletID != summary.WalletID || resp.TransactionCount != 3 {
		t.Fatalf("unexpected summary response: %+v", resp)
	}
	if !resp.TotalCredited.Equal(summary.TotalCredited) {
		t.Fatalf("total credited = %s, expected %s", resp.TotalCredited, summary.TotalCredited)
	}
}

func TestTransactionFromDomain(t *testing.T) {
	txn := &domain.Transaction{
		ID:           "txn-1",
		WalletID:     "wal-1",
		Type:         domain.TransactionTypeDebit,
		Category:     domain.CategoryBetStake,
		Amount:       decimal.RequireFromString("50"),
		BalanceAfter: decimal.RequireFromString("950"),
		Description:  "Bet placed - 50",
		Status:       domain.TransactionStatusCompleted,
		ReferenceID:  "bet-1",
		CreatedAt:    time.Now(),
	}

	resp := TransactionFromDomain(txn)
	if resp.Type != "debit" || resp.Category != "bet_stake" || !resp.BalanceAfter.Equal(txn.BalanceAfter) {
		t.Fatalf("unexpected transaction response: %+v", resp)
	}

	list := TransactionsFromDomain([]*domain.Transaction{txn})
	if len(list) != 1 || list[0].ID != txn.ID {
		t.Fatalf("TransactionsFromDomain returned %+v", list)
	}
}

func TestOperationFromResult(t *testing.T) {
	res := usecase.OperationResult{
		Success: true,
		Message: "Bet placed successfully",
		Transaction: &domain.Transaction{
			ID:       "txn-1",
			Type:     domain.TransactionTypeDebit,
			Category: domain.CategoryBetStake,
			Amount:   decimal.RequireFromString("50"),
			Status:   domain.TransactionStatusCompleted,
		},
	}

	resp := OperationFromResult(res)
	if !resp.Success || resp.Message != res.Message {
		t.Fatalf("unexpected operation response: %+v", resp)
	}
	if resp.Transaction == nil || resp.Transaction.ID != "txn-1" {
		t.Fatalf("transaction not converted: %+v", resp.Transaction)
	}

	failed := OperationFromResult(usecase.OperationResult{Success: false, Message: "Insufficient balance"})
	if failed.Success || failed.Transaction != nil {
		t.Fatalf("unexpected failure response: %+v", failed)
	}
}

func TestBetFromDomain(t *testing.T) {
	now := time.Now()
	bet := &domain.Bet{
		ID:              "bet-1",
		UserID:          "user-1",
		EventID:         "event-1",
		Type:            domain.BetTypeTeamAWin,
		Stake:           decimal.RequireFromString("100"),
		Odds:            decimal.RequireFromString("2.5"),
		PotentialPayout: decimal.RequireFromString("250"),
		Status:          domain.BetStatusWon,
		ActualPayout:    decimal.RequireFromString("250"),
		PlacedAt:        now,
		SettledAt:       &now,
	}

	resp := BetFromDomain(bet)
	if resp.Type != "team_a_win" || resp.Status != "won" || resp.SettledAt == nil {
		t.Fatalf("unexpected bet response: %+v", resp)
	}

	list := BetsFromDomain([]*domain.Bet{bet})
	if len(list) != 1 || list[0].ID != bet.ID {
		t.Fatalf("BetsFromDomain returned %+v", list)
	}
}

func TestDiceGameFromDomain(t *testing.T) {
	game := &domain.DiceGame{
		ID:           "game-1",
		UserID:       "user-1",
		BetAmount:    decimal.RequireFromString("10"),
		BetType:      domain.DiceBetSingle,
		BetValue:     4,
		DiceResult:   4,
		PayoutAmount: decimal.RequireFromString("60"),
		Status:       domain.DiceGameWon,
		CreatedAt:    time.Now(),
	}

	resp := DiceGameFromDomain(game)
	if resp.BetType != "single" || resp.DiceResult != 4 || resp.Status != "won" {
		t.Fatalf("unexpected dice game response: %+v", resp)
	}
}

func TestAuditReportFromUseCase(t *testing.T) {
	report := &usecase.AuditReport{
		TotalWallets:      2,
		ConsistentWallets: 1,
		Discrepancies: []*usecase.WalletAuditResult{
			{
				WalletID:        "wal-2",
				UserID:          "user-2",
				RecordedBalance: decimal.RequireFromString("100"),
				ReplayedBalance: decimal.RequireFromString("90"),
				EntryCount:      4,
				Consistent:      false,
				Problems:        []string{"final balance: recorded=100, replayed=90"},
			},
		},
		CheckedAt: time.Now(),
	}

	resp := AuditReportFromUseCase(report)
	if resp.TotalWallets != 2 || resp.ConsistentWallets != 1 {
		t.Fatalf("unexpected report response: %+v", resp)
	}
	if len(resp.Discrepancies) != 1 || resp.Discrepancies[0].WalletID != "wal-2" {
		t.Fatalf("discrepancies not converted: %+v", resp.Discrepancies)
	}
}
