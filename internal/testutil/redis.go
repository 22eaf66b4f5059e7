//go:build integration

package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisAddr returns the address of the test Redis instance, from
// ROADMCTL_TEST_REDIS_ADDR, defaulting to localhost.
func RedisAddr() string {
	if addr := os.Getenv("ROADMCTL_TEST_REDIS_ADDR"); addr != "" {
		return addr
	}
	return "127.0.0.1:6379"
}

// SkipIfNoRedis skips the test if the test Redis is not reachable.
func SkipIfNoRedis(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{Addr: RedisAddr()})
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("test Redis not available at %s: %v", RedisAddr(), err)
	}
}

// FlushRedis clears the test Redis database.
func FlushRedis(t *testing.T) {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: RedisAddr()})
	defer client.Close()

	if err := client.FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("flushing test Redis: %v", err)
	}
}
