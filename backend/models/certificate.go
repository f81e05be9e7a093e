package models

import "gorm.io/gorm"

type Certificate struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null" json:"user_id"`
	Name      string `gorm:"not null" json:"name"`
	Issuer    string `json:"issuer"`
	IssueDate string `json:"issue_date"` // YYYY-MM-DD
	URL       string `json:"url"`
	ShareCode string `gorm:"uniqueIndex" json:"share_code"`
}
