package services

import (
	"log"
	"time"
	"tracker/backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dayLayout = "2006-01-02"

// ActivityService maintains the per-day activity log behind the learning
// streak. Recording is best-effort: it is attached as a side effect to primary
// user actions (adding a project, achieving a goal, ...) and must never make
// those actions fail, so store errors are logged and swallowed on both the
// write and the read path.
type ActivityService struct {
	DB     *gorm.DB
	Logger *log.Logger

	// Now supplies the current time; tests pin it to fixed dates.
	Now func() time.Time
}

func NewActivityService(db *gorm.DB, logger *log.Logger) *ActivityService {
	return &ActivityService{DB: db, Logger: logger, Now: time.Now}
}

// StreakResult is the derived streak state for one user.
type StreakResult struct {
	Streak         int  `json:"streak"`
	HasLoggedToday bool `json:"has_logged_today"`
}

// today returns the current UTC calendar day at midnight. All day bucketing
// uses UTC so a record at 23:59:59Z and one at 00:00:01Z land in different
// buckets regardless of the server's local zone.
func (s *ActivityService) today() time.Time {
	now := s.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Record notes that the user performed a trackable action today. At most one
// progress_logs row exists per (user, day); repeat calls the same day bump
// Value by one. The write is a single atomic upsert so concurrent same-day
// calls cannot lose an increment.
func (s *ActivityService) Record(userID uint) {
	if userID == 0 {
		return
	}

	entry := models.ProgressLog{
		UserID: userID,
		Date:   s.today(),
		Value:  1,
	}

	err := s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value": gorm.Expr("progress_logs.value + 1"),
		}),
	}).Create(&entry).Error

	if err != nil {
		s.logf("failed to record activity for user %d: %v", userID, err)
	}
}

// Streak derives the user's current streak from the full activity history:
// the number of consecutive calendar days with at least one record, counting
// backward from today, or from yesterday if today has no record yet. A day
// with neither means the streak is broken. Read failures degrade to the zero
// result instead of surfacing an error.
func (s *ActivityService) Streak(userID uint) StreakResult {
	if userID == 0 {
		return StreakResult{}
	}

	var logs []models.ProgressLog
	if err := s.DB.Select("date").
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&logs).Error; err != nil {
		s.logf("failed to fetch activity logs for user %d: %v", userID, err)
		return StreakResult{}
	}

	if len(logs) == 0 {
		return StreakResult{}
	}

	days := make(map[string]bool, len(logs))
	for _, entry := range logs {
		days[entry.Day()] = true
	}

	today := s.today()
	yesterday := today.AddDate(0, 0, -1)

	result := StreakResult{HasLoggedToday: days[today.Format(dayLayout)]}

	anchor := today
	if !result.HasLoggedToday {
		if !days[yesterday.Format(dayLayout)] {
			return result
		}
		anchor = yesterday
	}

	for days[anchor.Format(dayLayout)] {
		result.Streak++
		anchor = anchor.AddDate(0, 0, -1)
	}

	return result
}

func (s *ActivityService) logf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Printf(format, args...)
	}
}
