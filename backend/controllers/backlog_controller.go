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

type BacklogController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Activity *services.ActivityService
}

func NewBacklogController(db *gorm.DB, cfg *config.Config, activity *services.ActivityService) *BacklogController {
	return &BacklogController{DB: db, Cfg: cfg, Activity: activity}
}

func (bc *BacklogController) GetItems(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, bc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	status := c.Query("status")
	category := c.Query("category")
	priority := c.Query("priority")

	query := bc.DB.Where("user_id = ?", userID).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if priority != "" {
		query = query.Where("priority = ?", priority)
	}

	var items []models.BacklogItem
	if err := query.Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.JSON(items)
}

func (bc *BacklogController) CreateItem(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, bc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input struct {
		Title       string `json:"title"`
		Category    string `json:"category"`
		Priority    string `json:"priority"`
		URL         string `json:"url"`
		Description string `json:"description"`
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

	item := models.BacklogItem{
		UserID:      userID,
		Title:       input.Title,
		Category:    input.Category,
		Priority:    input.Priority,
		URL:         input.URL,
		Description: input.Description,
		Status:      "pending",
	}
	if item.Category == "" {
		item.Category = "other"
	}
	if item.Priority == "" {
		item.Priority = "medium"
	}

	if err := bc.DB.Create(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create backlog item",
		})
	}

	bc.Activity.Record(userID)

	return c.JSON(fiber.Map{
		"message": "Backlog item created",
		"item":    item,
	})
}

func (bc *BacklogController) UpdateItem(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, bc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	itemID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}

	var input struct {
		Title       string `json:"title"`
		Category    string `json:"category"`
		Priority    string `json:"priority"`
		URL         string `json:"url"`
		Description string `json:"description"`
		Status      string `json:"status"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var item models.BacklogItem
	if err := bc.DB.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Backlog item not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	if input.Title != "" {
		item.Title = input.Title
	}
	if input.Category != "" {
		item.Category = input.Category
	}
	if input.Priority != "" {
		item.Priority = input.Priority
	}
	if input.URL != "" {
		item.URL = input.URL
	}
	if input.Description != "" {
		item.Description = input.Description
	}
	if input.Status != "" {
		item.Status = input.Status
	}

	if err := bc.DB.Save(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update backlog item",
		})
	}

	bc.Activity.Record(userID)

	return c.JSON(fiber.Map{
		"message": "Backlog item updated",
		"item":    item,
	})
}

// PromoteItem converts a backlog item into the entity its category points at
// (a course, project or skill) and marks the item completed.
func (bc *BacklogController) PromoteItem(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, bc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	itemID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}

	var item models.BacklogItem
	if err := bc.DB.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Backlog item not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var created interface{}
	switch item.Category {
	case "course":
		course := models.Course{
			UserID: userID,
			Title:  item.Title,
			Status: "enrolled",
			Notes:  item.Description,
		}
		if err := bc.DB.Create(&course).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not create course",
			})
		}
		created = course
	case "project":
		project := models.Project{
			UserID:      userID,
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
		}
		if err := bc.DB.Create(&project).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not create project",
			})
		}
		created = project
	case "skill":
		skill := models.Skill{
			UserID: userID,
			Name:   item.Title,
			Level:  "beginner",
		}
		if err := bc.DB.Create(&skill).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not create skill",
			})
		}
		created = skill
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Items in category 'other' cannot be promoted",
		})
	}

	item.Status = "completed"
	if err := bc.DB.Save(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update backlog item",
		})
	}

	bc.Activity.Record(userID)

	return c.JSON(fiber.Map{
		"message": "Backlog item promoted",
		"item":    item,
		"created": created,
	})
}

func (bc *BacklogController) DeleteItem(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, bc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	itemID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid item ID",
		})
	}

	result := bc.DB.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.BacklogItem{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete backlog item",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Backlog item not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Backlog item deleted",
	})
}
