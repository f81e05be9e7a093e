package models

import "gorm.io/gorm"

type Goal struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null" json:"user_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"` // YYYY-MM-DD
	Status      string `gorm:"default:pending" json:"status"` // pending, achieved
}
