package models

import (
	"time"

	"gorm.io/gorm"
)

// ProgressLog is one user's activity tally for one calendar day. Date is a
// UTC calendar day (midnight, no time component); the (user_id, date) pair is
// unique so repeated activity the same day bumps Value instead of adding rows.
type ProgressLog struct {
	gorm.Model
	UserID uint      `gorm:"not null;uniqueIndex:idx_progress_logs_user_date" json:"user_id"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:idx_progress_logs_user_date" json:"-"`
	Value  int       `gorm:"default:1" json:"value"`
}

// Day returns the canonical YYYY-MM-DD form of the log's date.
func (p ProgressLog) Day() string {
	return p.Date.UTC().Format("2006-01-02")
}
