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

type SkillsController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Activity *services.ActivityService
}

func NewSkillsController(db *gorm.DB, cfg *config.Config, activity *services.ActivityService) *SkillsController {
	return &SkillsController{DB: db, Cfg: cfg, Activity: activity}
}

func skillJSON(skill models.Skill) fiber.Map {
	return fiber.Map{
		"id":         skill.ID,
		"name":       skill.Name,
		"level":      skill.Level,
		"tags":       models.SplitTags(skill.Tags),
		"created_at": skill.CreatedAt,
	}
}

func (sc *SkillsController) GetSkills(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	level := c.Query("level")

	query := sc.DB.Where("user_id = ?", userID).Order("name ASC")
	if level != "" {
		query = query.Where("level = ?", level)
	}

	var skills []models.Skill
	if err := query.Find(&skills).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	result := make([]fiber.Map, 0, len(skills))
	for _, skill := range skills {
		result = append(result, skillJSON(skill))
	}

	return c.JSON(result)
}

func (sc *SkillsController) CreateSkill(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input struct {
		Name  string   `json:"name"`
		Level string   `json:"level"`
		Tags  []string `json:"tags"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	skill := models.Skill{
		UserID: userID,
		Name:   input.Name,
		Level:  input.Level,
		Tags:   models.JoinTags(input.Tags),
	}
	if skill.Level == "" {
		skill.Level = "beginner"
	}

	if err := sc.DB.Create(&skill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create skill",
		})
	}

	sc.Activity.Record(userID)

	return c.JSON(fiber.Map{
		"message": "Skill created",
		"skill":   skillJSON(skill),
	})
}

func (sc *SkillsController) UpdateSkill(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	skillID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid skill ID",
		})
	}

	var input struct {
		Name  string   `json:"name"`
		Level string   `json:"level"`
		Tags  []string `json:"tags"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var skill models.Skill
	if err := sc.DB.Where("id = ? AND user_id = ?", skillID, userID).First(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Skill not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	if input.Name != "" {
		skill.Name = input.Name
	}
	if input.Level != "" {
		skill.Level = input.Level
	}
	if input.Tags != nil {
		skill.Tags = models.JoinTags(input.Tags)
	}

	if err := sc.DB.Save(&skill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update skill",
		})
	}

	sc.Activity.Record(userID)

	return c.JSON(fiber.Map{
		"message": "Skill updated",
		"skill":   skillJSON(skill),
	})
}

func (sc *SkillsController) DeleteSkill(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	skillID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid skill ID",
		})
	}

	result := sc.DB.Where("id = ? AND user_id = ?", skillID, userID).Delete(&models.Skill{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete skill",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Skill not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Skill deleted",
	})
}
