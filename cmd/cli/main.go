package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/betwallet/internal/domain"
)

var (
	baseURL string
	userID  string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "betwallet-cli",
		Short: "BetWallet CLI tool",
		Long:  `A command line interface for interacting with the BetWallet API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the BetWallet API")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "User ID sent as the caller identity")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Wallet commands
	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}
	walletCmd.AddCommand(&cobra.Command{
		Use:   "summary",
		Short: "Show wallet summary",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/wallet/summary")
		},
	})
	walletCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show betting stats",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/wallet/stats")
		},
	})
	walletCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(walletCmd)

	// Audit commands
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Ledger integrity checks",
	}
	auditCmd.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "Replay every wallet's ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			var report struct {
				TotalWallets      int `json:"total_wallets"`
				ConsistentWallets int `json:"consistent_wallets"`
			}
			body := fetch("/api/v1/audit/wallets")
			if err := json.Unmarshal(body, &report); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			getJSONBody(body)

			return fleetConsistencyErr(report.TotalWallets, report.ConsistentWallets)
		},
	})
	auditCmd.AddCommand(&cobra.Command{
		Use:   "wallet [id]",
		Short: "Replay one wallet's ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result struct {
				WalletID   string `json:"wallet_id"`
				Consistent bool   `json:"consistent"`
			}
			body := fetch("/api/v1/audit/wallets/" + args[0])
			if err := json.Unmarshal(body, &result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			getJSONBody(body)

			return walletConsistencyErr(result.WalletID, result.Consistent)
		},
	})
	rootCmd.AddCommand(auditCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent transactions",
		Run: func(cmd *cobra.Command, args []string) {
			body := fetch(fmt.Sprintf("/api/v1/wallet/transactions?limit=%d", limit))

			var resp struct {
				Transactions []struct {
					Type         string `json:"type"`
					Category     string `json:"category"`
					Amount       string `json:"amount"`
					BalanceAfter string `json:"balance_after"`
					Description  string `json:"description"`
					CreatedAt    string `json:"created_at"`
				} `json:"transactions"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				fmt.Printf("Failed to parse response: %v\n", err)
				os.Exit(1)
			}

			fmt.Printf("%-8s %-16s %12s %14s  %s\n", "TYPE", "CATEGORY", "AMOUNT", "BALANCE", "DESCRIPTION")
			for _, txn := range resp.Transactions {
				fmt.Printf("%-8s %-16s %12s %14s  %s\n",
					txn.Type, txn.Category, txn.Amount, txn.BalanceAfter, truncate(txn.Description, 40))
			}
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of transactions to show")

	return cmd
}

// fleetConsistencyErr turns a fleet audit report into a command error,
// so an inconsistent ledger fails the invocation.
func fleetConsistencyErr(total, consistent int) error {
	if consistent != total {
		return fmt.Errorf("%w: %d of %d wallets failed replay",
			domain.ErrLedgerInconsistent, total-consistent, total)
	}
	return nil
}

// walletConsistencyErr does the same for a single-wallet replay.
func walletConsistencyErr(walletID string, consistent bool) error {
	if !consistent {
		return fmt.Errorf("%w: wallet %s failed replay", domain.ErrLedgerInconsistent, walletID)
	}
	return nil
}

// fetch performs a GET and exits on any non-200 answer.
func fetch(path string) []byte {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}

func getJSON(path string) {
	getJSONBody(fetch(path))
}

func getJSONBody(body []byte) {
	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to render response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return strings.TrimSpace(s[:max-3]) + "..."
}
