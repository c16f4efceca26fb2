package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is an in-process lock store with expiration.
// It backs sweep locks when Redis is not configured, so locks only
// hold within one process.
type MemoryStore struct {
	items *gocache.Cache
}

// NewMemoryStore creates a new in-memory store that purges expired items every 5 minutes
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: gocache.New(gocache.NoExpiration, 5*time.Minute),
	}
}

// Acquire takes the lock at key for ttl. It returns false when another holder has it.
func (ms *MemoryStore) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	if err := ms.items.Add(key, "locked", ttl); err != nil {
		return false, nil
	}
	return true, nil
}

// Release drops the lock at key
func (ms *MemoryStore) Release(_ context.Context, key string) error {
	ms.items.Delete(key)
	return nil
}
