package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StoreEntry is the server-side mirror of one client collection cookie.
// One row per (session, collection key); the value is the same URL-decoded
// JSON blob the cookie carries. Rows expire on the cookie TTL and are
// purged by the cleanup scheduler.
type StoreEntry struct {
	gorm.Model
	SessionID string         `json:"session_id" gorm:"index:idx_session_key,unique;not null"`
	Key       string         `json:"key" gorm:"index:idx_session_key,unique;not null"`
	Value     datatypes.JSON `json:"value"`
	ExpiresAt time.Time      `json:"expires_at" gorm:"index"`
}
