package models

import "gorm.io/gorm"

type Project struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null" json:"user_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	RepoURL     string `json:"repo_url"`
	ImageURL    string `json:"image_url"`
	Notes       string `json:"notes"`
	Summary     string `json:"summary"`
	Tags        string `json:"-"` // comma-separated
}
