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

type ProjectsController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Activity *services.ActivityService
}

func NewProjectsController(db *gorm.DB, cfg *config.Config, activity *services.ActivityService) *ProjectsController {
	return &ProjectsController{DB: db, Cfg: cfg, Activity: activity}
}

func projectJSON(project models.Project) fiber.Map {
	return fiber.Map{
		"id":          project.ID,
		"title":       project.Title,
		"description": project.Description,
		"url":         project.URL,
		"repo_url":    project.RepoURL,
		"image_url":   project.ImageURL,
		"notes":       project.Notes,
		"summary":     project.Summary,
		"tags":        models.SplitTags(project.Tags),
		"created_at":  project.CreatedAt,
	}
}

func (pc *ProjectsController) GetProjects(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	search := c.Query("search")
	tag := c.Query("tag")

	query := pc.DB.Where("user_id = ?", userID).Order("created_at DESC")

	if search != "" {
		query = query.Where("title LIKE ? OR description LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if tag != "" {
		query = query.Where("tags LIKE ?", "%"+tag+"%")
	}

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	result := make([]fiber.Map, 0, len(projects))
	for _, project := range projects {
		result = append(result, projectJSON(project))
	}

	return c.JSON(result)
}

func (pc *ProjectsController) GetProject(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	projectID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID",
		})
	}

	var project models.Project
	if err := pc.DB.Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Project not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	var resources []models.LearningResource
	pc.DB.Where("user_id = ? AND project_id = ?", userID, projectID).Find(&resources)

	return c.JSON(fiber.Map{
		"project":   projectJSON(project),
		"resources": resources,
	})
}

func (pc *ProjectsController) CreateProject(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		URL         string   `json:"url"`
		RepoURL     string   `json:"repo_url"`
		ImageURL    string   `json:"image_url"`
		Notes       string   `json:"notes"`
		Summary     string   `json:"summary"`
		Tags        []string `json:"tags"`
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

	project := models.Project{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		URL:         input.URL,
		RepoURL:     input.RepoURL,
		ImageURL:    input.ImageURL,
		Notes:       input.Notes,
		Summary:     input.Summary,
		Tags:        models.JoinTags(input.Tags),
	}

	if err := pc.DB.Create(&project).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create project",
		})
	}

	pc.Activity.Record(userID)

	return c.JSON(fiber.Map{
		"message": "Project created",
		"project": projectJSON(project),
	})
}

func (pc *ProjectsController) UpdateProject(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	projectID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID",
		})
	}

	var input struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		URL         string   `json:"url"`
		RepoURL     string   `json:"repo_url"`
		ImageURL    string   `json:"image_url"`
		Notes       string   `json:"notes"`
		Summary     string   `json:"summary"`
		Tags        []string `json:"tags"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var project models.Project
	if err := pc.DB.Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Project not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	if input.Title != "" {
		project.Title = input.Title
	}
	if input.Description != "" {
		project.Description = input.Description
	}
	if input.URL != "" {
		project.URL = input.URL
	}
	if input.RepoURL != "" {
		project.RepoURL = input.RepoURL
	}
	if input.ImageURL != "" {
		project.ImageURL = input.ImageURL
	}
	if input.Notes != "" {
		project.Notes = input.Notes
	}
	if input.Summary != "" {
		project.Summary = input.Summary
	}
	if input.Tags != nil {
		project.Tags = models.JoinTags(input.Tags)
	}

	if err := pc.DB.Save(&project).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update project",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Project updated",
		"project": projectJSON(project),
	})
}

func (pc *ProjectsController) DeleteProject(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	projectID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid project ID",
		})
	}

	result := pc.DB.Where("id = ? AND user_id = ?", projectID, userID).Delete(&models.Project{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete project",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Project not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Project deleted",
	})
}
