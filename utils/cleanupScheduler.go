package utils

import (
	"log"
	"time"

	"github.com/phungle2508/antoree-backend/dashboard"
	"github.com/phungle2508/antoree-backend/database"
	"github.com/phungle2508/antoree-backend/store"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[CLEANUP-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// purgeExpiredEntries removes mirrored collections whose cookie TTL has
// lapsed. Expiry is a silent, total data loss event for that session,
// same as the cookie expiring in the browser.
func purgeExpiredEntries() {
	purged, err := store.PurgeExpired(database.Database.Db)
	if err != nil {
		logScheduler("Error purging expired store entries: " + err.Error())
		return
	}
	if purged > 0 {
		logScheduler("Purged expired store entries")
	}
}

// reapIdleWatchers drops dashboard watchers that no request has touched
// for a while, releasing their bus subscriptions and poll tickers
func reapIdleWatchers() {
	if dashboard.DefaultManager == nil {
		return
	}
	dashboard.DefaultManager.ReapIdle(30 * time.Minute)
}

// StartCleanupScheduler runs the periodic maintenance jobs. The returned
// cron must be stopped on shutdown.
func StartCleanupScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@every 1h", purgeExpiredEntries); err != nil {
		log.Fatalf("Failed to schedule store cleanup: %v", err)
	}
	if _, err := c.AddFunc("@every 10m", reapIdleWatchers); err != nil {
		log.Fatalf("Failed to schedule watcher reaping: %v", err)
	}

	c.Start()
	logScheduler("Cleanup scheduler started")
	return c
}
