package models

import "gorm.io/gorm"

type Skill struct {
	gorm.Model
	UserID uint   `gorm:"index;not null" json:"user_id"`
	Name   string `gorm:"not null" json:"name"`
	Level  string `gorm:"default:beginner" json:"level"` // beginner, intermediate, advanced
	Tags   string `json:"-"`                             // comma-separated
}
