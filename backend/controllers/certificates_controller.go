package controllers

import (
	"errors"
	"strconv"
	"tracker/backend/config"
	"tracker/backend/models"
	"tracker/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CertificatesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCertificatesController(db *gorm.DB, cfg *config.Config) *CertificatesController {
	return &CertificatesController{DB: db, Cfg: cfg}
}

func (cc *CertificatesController) GetCertificates(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var certificates []models.Certificate
	if err := cc.DB.Where("user_id = ?", userID).
		Order("issue_date DESC").
		Find(&certificates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.JSON(certificates)
}

func (cc *CertificatesController) CreateCertificate(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var input struct {
		Name      string `json:"name"`
		Issuer    string `json:"issuer"`
		IssueDate string `json:"issue_date"`
		URL       string `json:"url"`
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

	certificate := models.Certificate{
		UserID:    userID,
		Name:      input.Name,
		Issuer:    input.Issuer,
		IssueDate: input.IssueDate,
		URL:       input.URL,
		ShareCode: uuid.NewString(),
	}

	if err := cc.DB.Create(&certificate).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create certificate",
		})
	}

	return c.JSON(fiber.Map{
		"message":     "Certificate created",
		"certificate": certificate,
	})
}

func (cc *CertificatesController) UpdateCertificate(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	certificateID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid certificate ID",
		})
	}

	var input struct {
		Name      string `json:"name"`
		Issuer    string `json:"issuer"`
		IssueDate string `json:"issue_date"`
		URL       string `json:"url"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var certificate models.Certificate
	if err := cc.DB.Where("id = ? AND user_id = ?", certificateID, userID).First(&certificate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Certificate not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	if input.Name != "" {
		certificate.Name = input.Name
	}
	if input.Issuer != "" {
		certificate.Issuer = input.Issuer
	}
	if input.IssueDate != "" {
		certificate.IssueDate = input.IssueDate
	}
	if input.URL != "" {
		certificate.URL = input.URL
	}

	if err := cc.DB.Save(&certificate).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update certificate",
		})
	}

	return c.JSON(fiber.Map{
		"message":     "Certificate updated",
		"certificate": certificate,
	})
}

func (cc *CertificatesController) DeleteCertificate(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	certificateID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid certificate ID",
		})
	}

	result := cc.DB.Where("id = ? AND user_id = ?", certificateID, userID).Delete(&models.Certificate{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete certificate",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Certificate not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Certificate deleted",
	})
}
