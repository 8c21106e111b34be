//go:build integration

package storage

import (
	"context"
	"os"
	"testing"

	"go.uber.org/zap"
)

func TestRedis(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	r, err := NewRedis(context.Background(), RedisOptions{Addr: addr, Prefix: "gym_test:"}, zap.NewNop())
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	exerciseKVNoClosedCheck(t, r)
}

// exerciseKVNoClosedCheck - go-redis после Close возвращает собственную ошибку
func exerciseKVNoClosedCheck(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()
	defer kv.Close()

	if err := kv.Delete(ctx, KeyUsers); err != nil {
		t.Fatal(err)
	}
	if err := kv.Set(ctx, KeyUsers, []byte(`[]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, ok, err := kv.Get(ctx, KeyUsers)
	if err != nil || !ok || string(value) != `[]` {
		t.Fatalf("Get: value=%s ok=%v err=%v", value, ok, err)
	}
	if err := kv.Delete(ctx, KeyUsers); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := kv.Get(ctx, KeyUsers); ok {
		t.Error("key still present after Delete")
	}
}
