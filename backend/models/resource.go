package models

import "gorm.io/gorm"

type LearningResource struct {
	gorm.Model
	UserID       uint   `gorm:"index;not null" json:"user_id"`
	Title        string `gorm:"not null" json:"title"`
	URL          string `gorm:"not null" json:"url"`
	ResourceType string `gorm:"default:link" json:"resource_type"` // link, video, tutorial, document
	CourseID     *uint  `gorm:"index" json:"course_id"`
	ProjectID    *uint  `gorm:"index" json:"project_id"`
}
