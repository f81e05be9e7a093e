package controllers

import (
	"tracker/backend/config"
	"tracker/backend/models"
	"tracker/backend/services"
	"tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Activity *services.ActivityService
}

func NewDashboardController(db *gorm.DB, cfg *config.Config, activity *services.ActivityService) *DashboardController {
	return &DashboardController{DB: db, Cfg: cfg, Activity: activity}
}

// GetStreak godoc
// @Summary Get learning streak
// @Description Returns the current consecutive-day streak and whether today has activity
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.StreakResult
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /streak [get]
func (dc *DashboardController) GetStreak(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, dc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	return c.JSON(dc.Activity.Streak(userID))
}

// GetDashboard godoc
// @Summary Get dashboard summary
// @Description Returns entity counts, recent courses, top skills, upcoming goals, the last week of activity and the streak
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /dashboard [get]
func (dc *DashboardController) GetDashboard(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, dc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var courseCount, projectCount, certificateCount, pendingGoalCount int64
	dc.DB.Model(&models.Course{}).Where("user_id = ?", userID).Count(&courseCount)
	dc.DB.Model(&models.Project{}).Where("user_id = ?", userID).Count(&projectCount)
	dc.DB.Model(&models.Certificate{}).Where("user_id = ?", userID).Count(&certificateCount)
	dc.DB.Model(&models.Goal{}).Where("user_id = ? AND status = 'pending'", userID).Count(&pendingGoalCount)

	var recentCourses []models.Course
	dc.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(3).
		Find(&recentCourses)

	var topSkills []models.Skill
	dc.DB.Where("user_id = ?", userID).
		Order("CASE level WHEN 'advanced' THEN 0 WHEN 'intermediate' THEN 1 ELSE 2 END").
		Limit(6).
		Find(&topSkills)

	var upcomingGoals []models.Goal
	dc.DB.Where("user_id = ? AND status = 'pending'", userID).
		Order("deadline ASC").
		Limit(4).
		Find(&upcomingGoals)

	var recentActivity []models.ProgressLog
	dc.DB.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(7).
		Find(&recentActivity)

	activity := make([]fiber.Map, 0, len(recentActivity))
	for _, entry := range recentActivity {
		activity = append(activity, fiber.Map{
			"date":  entry.Day(),
			"value": entry.Value,
		})
	}

	courses := make([]fiber.Map, 0, len(recentCourses))
	for _, course := range recentCourses {
		courses = append(courses, courseJSON(course))
	}

	skills := make([]fiber.Map, 0, len(topSkills))
	for _, skill := range topSkills {
		skills = append(skills, skillJSON(skill))
	}

	return c.JSON(fiber.Map{
		"counts": fiber.Map{
			"courses":       courseCount,
			"projects":      projectCount,
			"certificates":  certificateCount,
			"pending_goals": pendingGoalCount,
		},
		"recent_courses":  courses,
		"top_skills":      skills,
		"upcoming_goals":  upcomingGoals,
		"recent_activity": activity,
		"streak":          dc.Activity.Streak(userID),
	})
}
