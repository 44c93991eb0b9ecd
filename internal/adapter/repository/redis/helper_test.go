package redis

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

// newTestRedisClient backs a client with an in-process miniredis so
// repository tests need no external server.
func newTestRedisClient(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	return redislib.NewClient(&redislib.Options{Addr: mr.Addr()}), mr
}
