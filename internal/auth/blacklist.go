package auth

import "sync"

// TokenBlacklist is the revocation set for logged-out tokens. Revoked
// tokens stay rejected for the life of the process; expired entries are
// not evicted.
type TokenBlacklist interface {
	Revoke(token string)
	IsRevoked(token string) bool
}

type MemoryBlacklist struct {
	mu      sync.RWMutex
	revoked map[string]struct{}
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{
		revoked: make(map[string]struct{}),
	}
}

func (b *MemoryBlacklist) Revoke(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.revoked[token] = struct{}{}
}

func (b *MemoryBlacklist) IsRevoked(token string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.revoked[token]
	return ok
}
