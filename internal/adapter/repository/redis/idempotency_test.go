package redis

import (
	"context"
	"testing"
	"time"
)

func TestIdempotencyStore_CheckAndSetExisting(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if err := client.Set(ctx, store.prefix+"key", "cached", time.Minute).Err(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	exists, resp, err := store.CheckAndSet(ctx, "key", nil, time.Minute)
	if err != nil {
		t.Fatalf("CheckAndSet failed: %v", err)
	}

	if !exists || string(resp) != "cached" {
		t.Fatalf("expected existing cached response, got exists=%v resp=%s", exists, resp)
	}
}

func TestIdempotencyStore_CheckAndSetLocksNewKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, resp, err := store.CheckAndSet(ctx, "pending", nil, time.Minute)
	if err != nil || exists || resp != nil {
		t.Fatalf("unexpected result: exists=%v resp=%v err=%v", exists, resp, err)
	}

	val, err := client.Get(ctx, store.prefix+"pending").Result()
	if err != nil || val != "processing" {
		t.Fatalf("expected placeholder lock, got val=%s err=%v", val, err)
	}
}

func TestIdempotencyStore_SecondCallSeesFirstResponse(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, _, err := store.CheckAndSet(ctx, "op", []byte(`{"success":true}`), time.Minute)
	if err != nil || exists {
		t.Fatalf("unexpected first call result: exists=%v err=%v", exists, err)
	}

	exists, resp, err := store.CheckAndSet(ctx, "op", []byte(`{"success":false}`), time.Minute)
	if err != nil {
		t.Fatalf("CheckAndSet failed: %v", err)
	}
	if !exists || string(resp) != `{"success":true}` {
		t.Fatalf("expected first response replayed, got exists=%v resp=%s", exists, resp)
	}
}

func TestIdempotencyStore_Update(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if err := store.Update(ctx, "complete", []byte("done"), time.Minute); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	val, err := client.Get(ctx, store.prefix+"complete").Result()
	if err != nil || val != "done" {
		t.Fatalf("expected stored response, got val=%s err=%v", val, err)
	}
}

func TestIdempotencyStore_DeleteReleasesKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "retry", nil, time.Minute); err != nil {
		t.Fatalf("CheckAndSet failed: %v", err)
	}

	if err := store.Delete(ctx, "retry"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// A retry after release behaves like a fresh request.
	exists, _, err := store.CheckAndSet(ctx, "retry", nil, time.Minute)
	if err != nil || exists {
		t.Fatalf("expected a fresh key after delete, got exists=%v err=%v", exists, err)
	}
}
