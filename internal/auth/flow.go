// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrFlowNotFound is returned when a flow id is unknown, expired or already used.
var ErrFlowNotFound = errors.New("auth: flow not found")

// FlowStore keeps PKCE verifiers between the outbound redirect and the callback.
//
// # Implementations
//
// [MemoryFlowStore] for single-instance deployments and [RedisFlowStore] when
// REDIS_URL is configured.
type FlowStore interface {
	// Save stores verifier under id for at most ttl.
	Save(context context.Context, id, verifier string, ttl time.Duration) error

	// Take returns and deletes the verifier. A flow can be taken once.
	//
	// Returns [ErrFlowNotFound] on a miss.
	Take(context context.Context, id string) (string, error)
}

type flowEntry struct {
	verifier  string
	expiresAt time.Time
}

// MemoryFlowStore is a mutex-guarded in-process [FlowStore].
type MemoryFlowStore struct {
	mu      sync.Mutex
	entries map[string]flowEntry
	now     func() time.Time
}

// NewMemoryFlowStore constructs an empty [MemoryFlowStore].
func NewMemoryFlowStore() *MemoryFlowStore {
	return &MemoryFlowStore{
		entries: make(map[string]flowEntry),
		now:     time.Now,
	}
}

// Save implements [FlowStore]. Expired entries are swept on every write.
func (store *MemoryFlowStore) Save(_ context.Context, id, verifier string, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	now := store.now()
	for key, entry := range store.entries {
		if now.After(entry.expiresAt) {
			delete(store.entries, key)
		}
	}

	store.entries[id] = flowEntry{verifier: verifier, expiresAt: now.Add(ttl)}
	return nil
}

// Take implements [FlowStore].
func (store *MemoryFlowStore) Take(_ context.Context, id string) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, ok := store.entries[id]
	if !ok {
		return "", ErrFlowNotFound
	}
	delete(store.entries, id)

	if store.now().After(entry.expiresAt) {
		return "", ErrFlowNotFound
	}
	return entry.verifier, nil
}

// Len reports how many flows are pending, expired ones included.
func (store *MemoryFlowStore) Len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.entries)
}
