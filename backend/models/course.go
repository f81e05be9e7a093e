package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	UserID               uint    `gorm:"index;not null" json:"user_id"`
	Title                string  `gorm:"not null" json:"title"`
	Platform             string  `json:"platform"`
	Status               string  `gorm:"default:enrolled" json:"status"` // enrolled, in-progress, completed, backlog
	CompletionPercentage float64 `gorm:"default:0" json:"completion_percentage"`
	Notes                string  `json:"notes"`
	Summary              string  `json:"summary"`
	Tags                 string  `json:"-"` // comma-separated
}
