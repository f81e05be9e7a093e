package models

import "gorm.io/gorm"

type BacklogItem struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null" json:"user_id"`
	Title       string `gorm:"not null" json:"title"`
	Category    string `gorm:"default:other" json:"category"`  // course, skill, project, other
	Priority    string `gorm:"default:medium" json:"priority"` // high, medium, low
	URL         string `json:"url"`
	Description string `json:"description"`
	Status      string `gorm:"default:pending" json:"status"` // pending, in-progress, completed, archived
}
