package store

import (
	"time"

	"github.com/phungle2508/antoree-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GormBackend mirrors one session's collections into the database so
// server-side components (dashboard watcher, cleanup scheduler) can read
// them between requests. It is a cache of cookie state, not an authority.
type GormBackend struct {
	db        *gorm.DB
	sessionID string
	ttl       time.Duration
}

// NewGormBackend creates a backend bound to one session
func NewGormBackend(db *gorm.DB, sessionID string, ttl time.Duration) *GormBackend {
	return &GormBackend{db: db, sessionID: sessionID, ttl: ttl}
}

func (g *GormBackend) Get(key string) (string, bool) {
	var entry models.StoreEntry
	err := g.db.Where("session_id = ? AND key = ? AND expires_at > ?",
		g.sessionID, key, time.Now()).First(&entry).Error
	if err != nil {
		return "", false
	}
	return string(entry.Value), true
}

func (g *GormBackend) Set(key, value string) error {
	expiresAt := time.Now().Add(g.ttl)

	var entry models.StoreEntry
	err := g.db.Where("session_id = ? AND key = ?", g.sessionID, key).First(&entry).Error
	if err != nil {
		entry = models.StoreEntry{
			SessionID: g.sessionID,
			Key:       key,
			Value:     datatypes.JSON(value),
			ExpiresAt: expiresAt,
		}
		return g.db.Create(&entry).Error
	}

	entry.Value = datatypes.JSON(value)
	entry.ExpiresAt = expiresAt
	return g.db.Save(&entry).Error
}

func (g *GormBackend) Delete(key string) error {
	return g.db.Unscoped().
		Where("session_id = ? AND key = ?", g.sessionID, key).
		Delete(&models.StoreEntry{}).Error
}

// PurgeExpired hard-deletes every expired row across all sessions.
// Called by the cleanup scheduler.
func PurgeExpired(db *gorm.DB) (int64, error) {
	result := db.Unscoped().
		Where("expires_at <= ?", time.Now()).
		Delete(&models.StoreEntry{})
	return result.RowsAffected, result.Error
}
