package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClient(t *testing.T) {
	t.Run("connects and pings", func(t *testing.T) {
		s := miniredis.RunT(t)

		client, err := NewClient(context.Background(), "redis://"+s.Addr())
		if err != nil {
			t.Fatalf("NewClient failed: %v", err)
		}
		defer client.Close()

		if err := client.Ping(context.Background()).Err(); err != nil {
			t.Fatalf("ping failed: %v", err)
		}
	})

	t.Run("rejects a malformed URL", func(t *testing.T) {
		if _, err := NewClient(context.Background(), "://bad-url"); err == nil {
			t.Fatal("expected an error for a malformed URL")
		}
	})

	t.Run("fails when the server is unreachable", func(t *testing.T) {
		s := miniredis.RunT(t)
		url := "redis://" + s.Addr()
		s.Close()

		if _, err := NewClient(context.Background(), url); err == nil {
			t.Fatal("expected an error when the server is down")
		}
	})
}
