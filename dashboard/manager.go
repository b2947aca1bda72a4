package dashboard

import (
	"log"
	"sync"
	"time"

	"github.com/phungle2508/antoree-backend/bus"
	"github.com/phungle2508/antoree-backend/catalog"
	"github.com/phungle2508/antoree-backend/recommend"
	"github.com/phungle2508/antoree-backend/store"

	"gorm.io/gorm"
)

// DefaultManager is the global watcher manager wired at startup
var DefaultManager *Manager

// Init creates the global manager
func Init(db *gorm.DB, b *bus.Bus, cat *catalog.Catalog, deriver *recommend.Deriver, interval, ttl time.Duration) {
	DefaultManager = NewManager(db, b, cat, deriver, interval, ttl)
}

// Manager owns one watcher per active session, reading each session's
// collections from the server-side mirror. Watchers are created lazily on
// the first dashboard request and reaped by the cleanup scheduler after
// sitting idle, so subscriptions don't accumulate over long sessions.
type Manager struct {
	db       *gorm.DB
	bus      *bus.Bus
	catalog  *catalog.Catalog
	deriver  *recommend.Deriver
	interval time.Duration
	ttl      time.Duration

	mu       sync.Mutex
	watchers map[string]*managedWatcher
}

type managedWatcher struct {
	watcher  *Watcher
	lastSeen time.Time
}

// NewManager wires the manager's shared dependencies
func NewManager(db *gorm.DB, b *bus.Bus, cat *catalog.Catalog, deriver *recommend.Deriver, interval, ttl time.Duration) *Manager {
	return &Manager{
		db:       db,
		bus:      b,
		catalog:  cat,
		deriver:  deriver,
		interval: interval,
		ttl:      ttl,
		watchers: make(map[string]*managedWatcher),
	}
}

// Watcher returns the session's watcher, creating it on first use
func (m *Manager) Watcher(sessionID string) (*Watcher, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if managed, ok := m.watchers[sessionID]; ok {
		managed.lastSeen = time.Now()
		return managed.watcher, nil
	}

	backend := store.NewGormBackend(m.db, sessionID, m.ttl)
	sessionStore := store.New(backend, m.bus, m.catalog, sessionID)

	watcher, err := NewWatcher(sessionStore, m.bus, m.catalog, m.deriver, sessionID, m.interval)
	if err != nil {
		return nil, err
	}

	m.watchers[sessionID] = &managedWatcher{watcher: watcher, lastSeen: time.Now()}
	return watcher, nil
}

// ReapIdle closes watchers unused for longer than maxIdle and returns how
// many were dropped
func (m *Manager) ReapIdle(maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	reaped := 0
	cutoff := time.Now().Add(-maxIdle)
	for session, managed := range m.watchers {
		if managed.lastSeen.Before(cutoff) {
			managed.watcher.Close()
			delete(m.watchers, session)
			reaped++
		}
	}
	if reaped > 0 {
		log.Printf("Reaped %d idle dashboard watchers", reaped)
	}
	return reaped
}

// Close shuts every watcher down
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for session, managed := range m.watchers {
		managed.watcher.Close()
		delete(m.watchers, session)
	}
}
