package services

import (
	"io"
	"log"
	"testing"
	"time"
	"tracker/backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T, now time.Time) (*ActivityService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:activity_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ProgressLog{}))

	t.Cleanup(func() {
		db.Exec("DELETE FROM progress_logs")
	})

	svc := NewActivityService(db, log.New(io.Discard, "", 0))
	svc.Now = func() time.Time { return now }
	return svc, db
}

func seedLog(t *testing.T, db *gorm.DB, userID uint, day string, value int) {
	t.Helper()
	date, err := time.ParseInLocation("2006-01-02", day, time.UTC)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.ProgressLog{UserID: userID, Date: date, Value: value}).Error)
}

func TestRecordSameDayIncrements(t *testing.T) {
	now := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	svc.Record(1)
	svc.Record(1)
	svc.Record(1)

	var logs []models.ProgressLog
	require.NoError(t, db.Where("user_id = ?", 1).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, 3, logs[0].Value)
	assert.Equal(t, "2024-01-10", logs[0].Day())
}

func TestRecordCrossDayIsolation(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	svc.Record(1)
	svc.Record(1)

	svc.Now = func() time.Time { return now.AddDate(0, 0, 1) }
	svc.Record(1)

	var logs []models.ProgressLog
	require.NoError(t, db.Where("user_id = ?", 1).Order("date ASC").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, "2024-01-10", logs[0].Day())
	assert.Equal(t, 2, logs[0].Value)
	assert.Equal(t, "2024-01-11", logs[1].Day())
	assert.Equal(t, 1, logs[1].Value)
}

func TestRecordMidnightBoundary(t *testing.T) {
	before := time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC)
	svc, db := newTestService(t, before)

	svc.Record(1)
	svc.Now = func() time.Time { return time.Date(2024, 1, 11, 0, 0, 1, 0, time.UTC) }
	svc.Record(1)

	var logs []models.ProgressLog
	require.NoError(t, db.Where("user_id = ?", 1).Order("date ASC").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, "2024-01-10", logs[0].Day())
	assert.Equal(t, "2024-01-11", logs[1].Day())
}

func TestRecordIgnoresZeroUser(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	svc.Record(0)

	var count int64
	db.Model(&models.ProgressLog{}).Count(&count)
	assert.Zero(t, count)
}

func TestStreakContiguousRun(t *testing.T) {
	now := time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	seedLog(t, db, 1, "2024-01-10", 2)
	seedLog(t, db, 1, "2024-01-09", 1)
	seedLog(t, db, 1, "2024-01-08", 4)
	seedLog(t, db, 1, "2024-01-05", 1) // disconnected, must not count

	result := svc.Streak(1)
	assert.Equal(t, 3, result.Streak)
	assert.True(t, result.HasLoggedToday)
}

func TestStreakGraceDay(t *testing.T) {
	// No record for today; yesterday anchors the streak.
	now := time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	seedLog(t, db, 1, "2024-01-10", 1)
	seedLog(t, db, 1, "2024-01-09", 1)
	seedLog(t, db, 1, "2024-01-08", 1)

	result := svc.Streak(1)
	assert.Equal(t, 3, result.Streak)
	assert.False(t, result.HasLoggedToday)
}

func TestStreakBroken(t *testing.T) {
	// Gap at both today and yesterday breaks the streak regardless of history.
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	seedLog(t, db, 1, "2024-01-08", 1)
	seedLog(t, db, 1, "2024-01-07", 1)

	result := svc.Streak(1)
	assert.Equal(t, 0, result.Streak)
	assert.False(t, result.HasLoggedToday)
}

func TestStreakNonContiguousHistoryIgnored(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	seedLog(t, db, 1, "2024-01-10", 1)
	seedLog(t, db, 1, "2024-01-09", 1)
	seedLog(t, db, 1, "2024-01-05", 1)

	result := svc.Streak(1)
	assert.Equal(t, 2, result.Streak)
	assert.True(t, result.HasLoggedToday)
}

func TestStreakNoHistory(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	result := svc.Streak(1)
	assert.Equal(t, 0, result.Streak)
	assert.False(t, result.HasLoggedToday)
}

func TestStreakScopedToOwner(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	seedLog(t, db, 1, "2024-01-10", 1)
	seedLog(t, db, 2, "2024-01-09", 1)

	result := svc.Streak(1)
	assert.Equal(t, 1, result.Streak)
}

func TestStreakUnknownOwner(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	result := svc.Streak(0)
	assert.Equal(t, 0, result.Streak)
	assert.False(t, result.HasLoggedToday)
}

func TestStoreFailureDegradesGracefully(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	svc, db := newTestService(t, now)

	require.NoError(t, db.Migrator().DropTable(&models.ProgressLog{}))
	t.Cleanup(func() {
		_ = db.AutoMigrate(&models.ProgressLog{})
	})

	// Write path swallows the failure, read path returns the zero default.
	svc.Record(1)

	result := svc.Streak(1)
	assert.Equal(t, 0, result.Streak)
	assert.False(t, result.HasLoggedToday)
}
