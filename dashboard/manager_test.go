package dashboard_test

import (
	"testing"
	"time"

	"github.com/phungle2508/antoree-backend/dashboard"
	"github.com/phungle2508/antoree-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newManager(t *testing.T) *dashboard.Manager {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StoreEntry{}))

	f := newFixture(t)
	m := dashboard.NewManager(db, f.bus, f.catalog, f.deriver, time.Hour, time.Hour)
	t.Cleanup(m.Close)
	return m
}

func TestManagerReusesWatcherPerSession(t *testing.T) {
	m := newManager(t)

	first, err := m.Watcher("sess-1")
	require.NoError(t, err)
	again, err := m.Watcher("sess-1")
	require.NoError(t, err)
	assert.Same(t, first, again)

	other, err := m.Watcher("sess-2")
	require.NoError(t, err)
	assert.NotSame(t, first, other)
}

func TestManagerReapsIdleWatchers(t *testing.T) {
	m := newManager(t)

	_, err := m.Watcher("sess-1")
	require.NoError(t, err)
	_, err = m.Watcher("sess-2")
	require.NoError(t, err)

	assert.Equal(t, 0, m.ReapIdle(time.Minute), "fresh watchers must survive")

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 2, m.ReapIdle(10*time.Millisecond))
	assert.Equal(t, 0, m.ReapIdle(10*time.Millisecond), "reaping is idempotent")
}

func TestManagerWatcherTouchRefreshesLastSeen(t *testing.T) {
	m := newManager(t)

	_, err := m.Watcher("sess-1")
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)
	_, err = m.Watcher("sess-1") // touch
	require.NoError(t, err)

	assert.Equal(t, 0, m.ReapIdle(20*time.Millisecond), "a touched watcher is not idle")
}
