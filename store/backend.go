package store

import (
	"sync"
	"time"
)

// Collection keys. These are the literal cookie names shared with the
// front-end and must not change.
const (
	KeyCart     = "cart"
	KeyWishlist = "wishlist"
	KeyUserData = "userData"
)

// Backend is durable storage for the client collections. Values are plain
// JSON strings; URL encoding and TTL handling are the backend's concern.
// Implementations are cookie (browser ground truth), memory (tests,
// dashboard) and gorm (server-side session mirror).
type Backend interface {
	// Get returns the stored JSON for key, or false if absent or expired
	Get(key string) (string, bool)
	// Set stores value and refreshes the TTL window from now
	Set(key, value string) error
	// Delete removes the key; deleting an absent key is not an error
	Delete(key string) error
}

// MemoryBackend is an in-process Backend with per-key expiry. Safe for
// concurrent use.
type MemoryBackend struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryBackend creates a memory backend with the given TTL window.
// A non-positive ttl means entries never expire.
func NewMemoryBackend(ttl time.Duration) *MemoryBackend {
	return &MemoryBackend{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryBackend) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(m.entries, key)
		return "", false
	}
	return entry.value, true
}

func (m *MemoryBackend) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{value: value}
	if m.ttl > 0 {
		entry.expiresAt = time.Now().Add(m.ttl)
	}
	m.entries[key] = entry
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}
