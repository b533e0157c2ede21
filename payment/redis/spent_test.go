package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "127.0.0.1:6379"
	}
	prefix := "agentpay-test-" + uuid.NewString()

	r, err := New(addr, WithPrefix(prefix), WithTTL(5*time.Minute))
	if err != nil {
		t.Skipf("redis unavailable at %s: %v", addr, err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		keys, _ := r.client.Keys(ctx, prefix+":*").Result()
		if len(keys) > 0 {
			_ = r.client.Del(ctx, keys...).Err()
		}
		_ = r.Close()
	})
	return r
}

func TestMarkSpentFirstClaimWins(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	ref := "0x" + uuid.NewString()
	fresh, err := r.MarkSpent(ctx, ref)
	if err != nil {
		t.Fatalf("MarkSpent failed: %v", err)
	}
	if !fresh {
		t.Fatal("first claim should be fresh")
	}

	fresh, err = r.MarkSpent(ctx, ref)
	if err != nil {
		t.Fatalf("second MarkSpent failed: %v", err)
	}
	if fresh {
		t.Fatal("second claim of the same reference must not be fresh")
	}
}

func TestReleaseReopensClaim(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	ref := "0x" + uuid.NewString()
	if fresh, err := r.MarkSpent(ctx, ref); err != nil || !fresh {
		t.Fatalf("first claim: fresh=%v err=%v", fresh, err)
	}
	if err := r.Release(ctx, ref); err != nil {
		t.Fatalf("release: %v", err)
	}
	fresh, err := r.MarkSpent(ctx, ref)
	if err != nil {
		t.Fatalf("claim after release: %v", err)
	}
	if !fresh {
		t.Fatal("released reference should be claimable again")
	}
}

func TestMarkSpentEmptyReference(t *testing.T) {
	r := newTestRegistry(t)

	if _, err := r.MarkSpent(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty reference")
	}
}

func TestNewRequiresAddr(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Fatal("expected error for empty addr")
	}
}
