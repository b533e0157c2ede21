package payment

import (
	"context"
	"sync"
)

// SpentRegistry remembers transaction references that have already been
// used to pay for a run, so a proof cannot be replayed.
type SpentRegistry interface {
	// MarkSpent claims ref. It returns true if the claim is fresh and
	// false if the reference was already spent.
	MarkSpent(ctx context.Context, ref string) (bool, error)
	// Release undoes a claim that never reached a verdict, so the same
	// proof can be presented again after a facilitator outage.
	Release(ctx context.Context, ref string) error
	Close() error
}

type memorySpentRegistry struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewMemorySpentRegistry is the single-instance default. Deployments with
// more than one gateway replica should use the Redis-backed registry.
func NewMemorySpentRegistry() SpentRegistry {
	return &memorySpentRegistry{seen: map[string]struct{}{}}
}

func (r *memorySpentRegistry) MarkSpent(_ context.Context, ref string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seen[ref]; ok {
		return false, nil
	}
	r.seen[ref] = struct{}{}
	return true, nil
}

func (r *memorySpentRegistry) Release(_ context.Context, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.seen, ref)
	return nil
}

func (r *memorySpentRegistry) Close() error { return nil }
