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

type ResourcesController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Activity *services.ActivityService
}

func NewResourcesController(db *gorm.DB, cfg *config.Config, activity *services.ActivityService) *ResourcesController {
	return &ResourcesController{DB: db, Cfg: cfg, Activity: activity}
}

func (rc *ResourcesController) GetResources(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	resourceType := c.Query("type")
	courseID := c.Query("course_id")
	projectID := c.Query("project_id")

	query := rc.DB.Where("user_id = ?", userID).Order("created_at DESC")
	if resourceType != "" {
		query = query.Where("resource_type = ?", resourceType)
	}
	if courseID != "" {
		query = query.Where("course_id = ?", courseID)
	}
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	var resources []models.LearningResource
	if err := query.Find(&resources).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.JSON(resources)
}

func (rc *ResourcesController) CreateResource(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input struct {
		Title        string `json:"title"`
		URL          string `json:"url"`
		ResourceType string `json:"resource_type"`
		CourseID     *uint  `json:"course_id"`
		ProjectID    *uint  `json:"project_id"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Title == "" || input.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title and URL are required",
		})
	}

	resource := models.LearningResource{
		UserID:       userID,
		Title:        input.Title,
		URL:          input.URL,
		ResourceType: input.ResourceType,
		CourseID:     input.CourseID,
		ProjectID:    input.ProjectID,
	}
	if resource.ResourceType == "" {
		resource.ResourceType = "link"
	}

	if err := rc.DB.Create(&resource).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create resource",
		})
	}

	rc.Activity.Record(userID)

	return c.JSON(fiber.Map{
		"message":  "Resource created",
		"resource": resource,
	})
}

func (rc *ResourcesController) UpdateResource(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	resourceID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resource ID",
		})
	}

	var input struct {
		Title        string `json:"title"`
		URL          string `json:"url"`
		ResourceType string `json:"resource_type"`
		CourseID     *uint  `json:"course_id"`
		ProjectID    *uint  `json:"project_id"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var resource models.LearningResource
	if err := rc.DB.Where("id = ? AND user_id = ?", resourceID, userID).First(&resource).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Resource not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	if input.Title != "" {
		resource.Title = input.Title
	}
	if input.URL != "" {
		resource.URL = input.URL
	}
	if input.ResourceType != "" {
		resource.ResourceType = input.ResourceType
	}
	if input.CourseID != nil {
		resource.CourseID = input.CourseID
	}
	if input.ProjectID != nil {
		resource.ProjectID = input.ProjectID
	}

	if err := rc.DB.Save(&resource).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update resource",
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Resource updated",
		"resource": resource,
	})
}

func (rc *ResourcesController) DeleteResource(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	resourceID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid resource ID",
		})
	}

	result := rc.DB.Where("id = ? AND user_id = ?", resourceID, userID).Delete(&models.LearningResource{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete resource",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resource not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Resource deleted",
	})
}
