package store

import (
	"time"

	"github.com/phungle2508/antoree-backend/bus"
	"github.com/phungle2508/antoree-backend/catalog"
	"github.com/phungle2508/antoree-backend/config"
	"github.com/phungle2508/antoree-backend/database"
	"github.com/phungle2508/antoree-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

// ForRequest builds the store for an HTTP request: browser cookies remain
// the ground truth, mirrored best-effort into the session's server-side
// rows so the dashboard watcher can see them between requests.
func ForRequest(c *fiber.Ctx) *Store {
	ttl := time.Duration(config.AppConfig.CookieTTLDays) * 24 * time.Hour
	sessionID := middleware.SessionID(c)

	var backend Backend = NewCookieBackend(c, ttl)
	if database.Database.Db != nil {
		backend = NewMirrorBackend(backend, NewGormBackend(database.Database.Db, sessionID, ttl))
	}

	return New(backend, bus.Broker, catalog.Courses, sessionID)
}
