package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/iho/betwallet/internal/domain"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}

	if got := truncate("longerstring", 6); got != "lon..." {
		t.Fatalf("expected lon..., got %q", got)
	}

	if got := truncate("abcdef", 3); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
}

func TestConsistencyErrs(t *testing.T) {
	if err := fleetConsistencyErr(3, 3); err != nil {
		t.Fatalf("consistent fleet must not error, got %v", err)
	}
	if err := fleetConsistencyErr(3, 2); !errors.Is(err, domain.ErrLedgerInconsistent) {
		t.Fatalf("expected ErrLedgerInconsistent, got %v", err)
	}

	if err := walletConsistencyErr("wal-1", true); err != nil {
		t.Fatalf("consistent wallet must not error, got %v", err)
	}
	if err := walletConsistencyErr("wal-1", false); !errors.Is(err, domain.ErrLedgerInconsistent) {
		t.Fatalf("expected ErrLedgerInconsistent, got %v", err)
	}
}

func TestPrintJSON(t *testing.T) {
	out := captureOutput(t, func() {
		printJSON(struct {
			A int `json:"a"`
		}{A: 1})
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}
