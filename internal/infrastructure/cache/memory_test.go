package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreLock(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	ok, err := store.Acquire(ctx, "sweep:meeting:1", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first acquire should succeed, ok=%v err=%v", ok, err)
	}
	ok, _ = store.Acquire(ctx, "sweep:meeting:1", time.Minute)
	if ok {
		t.Fatalf("second acquire should fail while held")
	}

	if err := store.Release(ctx, "sweep:meeting:1"); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, _ = store.Acquire(ctx, "sweep:meeting:1", time.Minute)
	if !ok {
		t.Fatalf("acquire after release should succeed")
	}
}

func TestMemoryStoreLockExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if ok, _ := store.Acquire(ctx, "k", 10*time.Millisecond); !ok {
		t.Fatalf("first acquire should succeed")
	}
	time.Sleep(30 * time.Millisecond)
	if ok, _ := store.Acquire(ctx, "k", time.Minute); !ok {
		t.Fatalf("expired lock should be acquirable")
	}
}
