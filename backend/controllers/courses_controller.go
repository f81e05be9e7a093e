package controllers

import (
	"errors"
	"strconv"
	"tracker/backend/config"
	"tracker/backend/models"
	"tracker/backend/services"
	"tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Activity *services.ActivityService
}

func NewCoursesController(db *gorm.DB, cfg *config.Config, activity *services.ActivityService) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg, Activity: activity}
}

func courseJSON(course models.Course) fiber.Map {
	return fiber.Map{
		"id":                    course.ID,
		"title":                 course.Title,
		"platform":              course.Platform,
		"status":                course.Status,
		"completion_percentage": course.CompletionPercentage,
		"notes":                 course.Notes,
		"summary":               course.Summary,
		"tags":                  models.SplitTags(course.Tags),
		"created_at":            course.CreatedAt,
	}
}

func (cc *CoursesController) GetCourses(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	status := c.Query("status")
	tag := c.Query("tag")

	query := cc.DB.Where("user_id = ?", userID).Order("created_at DESC")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if tag != "" {
		query = query.Where("tags LIKE ?", "%"+tag+"%")
	}

	var courses []models.Course
	if err := query.Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		result = append(result, courseJSON(course))
	}

	return c.JSON(result)
}

func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	var course models.Course
	if err := cc.DB.Where("id = ? AND user_id = ?", courseID, userID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var resources []models.LearningResource
	cc.DB.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&resources)

	return c.JSON(fiber.Map{
		"course":    courseJSON(course),
		"resources": resources,
	})
}

func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input struct {
		Title    string   `json:"title"`
		Platform string   `json:"platform"`
		Status   string   `json:"status"`
		Notes    string   `json:"notes"`
		Summary  string   `json:"summary"`
		Tags     []string `json:"tags"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	course := models.Course{
		UserID:   userID,
		Title:    input.Title,
		Platform: input.Platform,
		Status:   input.Status,
		Notes:    input.Notes,
		Summary:  input.Summary,
		Tags:     models.JoinTags(input.Tags),
	}
	if course.Status == "" {
		course.Status = "enrolled"
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create course",
		})
	}

	cc.Activity.Record(userID)

	return c.JSON(fiber.Map{
		"message": "Course created",
		"course":  courseJSON(course),
	})
}

func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	var input struct {
		Title                string   `json:"title"`
		Platform             string   `json:"platform"`
		Status               string   `json:"status"`
		CompletionPercentage *float64 `json:"completion_percentage"`
		Notes                string   `json:"notes"`
		Summary              string   `json:"summary"`
		Tags                 []string `json:"tags"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var course models.Course
	if err := cc.DB.Where("id = ? AND user_id = ?", courseID, userID).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Platform != "" {
		course.Platform = input.Platform
	}
	if input.Status != "" {
		course.Status = input.Status
	}
	if input.CompletionPercentage != nil {
		course.CompletionPercentage = *input.CompletionPercentage
	}
	if input.Notes != "" {
		course.Notes = input.Notes
	}
	if input.Summary != "" {
		course.Summary = input.Summary
	}
	if input.Tags != nil {
		course.Tags = models.JoinTags(input.Tags)
	}

	if err := cc.DB.Save(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update course",
		})
	}

	cc.Activity.Record(userID)

	return c.JSON(fiber.Map{
		"message": "Course updated",
		"course":  courseJSON(course),
	})
}

func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	result := cc.DB.Where("id = ? AND user_id = ?", courseID, userID).Delete(&models.Course{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete course",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Course deleted",
	})
}
