package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryDenylist keeps revoked token ids in process memory. Entries are
// dropped lazily once their expiry has passed.
type MemoryDenylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryDenylist returns an empty in-process denylist. A nil clock means time.Now.
func NewMemoryDenylist(now func() time.Time) *MemoryDenylist {
	if now == nil {
		now = time.Now
	}
	return &MemoryDenylist{entries: make(map[string]time.Time), now: now}
}

// Revoke records tokenID until the given time.
func (d *MemoryDenylist) Revoke(_ context.Context, tokenID string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[tokenID] = until
	return nil
}

// IsRevoked reports whether tokenID is currently denylisted.
func (d *MemoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	until, ok := d.entries[tokenID]
	if !ok {
		return false, nil
	}
	if d.now().After(until) {
		delete(d.entries, tokenID)
		return false, nil
	}
	return true, nil
}
