// handlers/admin/settings.go - whatsapp and billing configuration
package admin

import (
	"errors"
	"time"

	"coringas/models"
	"coringas/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SettingsHandler struct {
	db       *gorm.DB
	whatsapp *services.WhatsAppService
}

func NewSettingsHandler(db *gorm.DB, whatsapp *services.WhatsAppService) *SettingsHandler {
	return &SettingsHandler{db: db, whatsapp: whatsapp}
}

// GetWhatsAppSettings returns the gateway configuration.
// GET /api/admin/settings/whatsapp
func (h *SettingsHandler) GetWhatsAppSettings(c *fiber.Ctx) error {
	settings, err := h.whatsapp.Settings()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load settings"})
	}
	return c.JSON(fiber.Map{"settings": settings})
}

// UpdateWhatsAppSettings replaces the gateway configuration.
// PUT /api/admin/settings/whatsapp
func (h *SettingsHandler) UpdateWhatsAppSettings(c *fiber.Ctx) error {
	var req models.WhatsAppSettings
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req.ID = 1
	req.UpdatedAt = time.Now()
	if err := h.db.Save(&req).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save settings"})
	}

	return c.JSON(fiber.Map{"success": true, "settings": req})
}

// GetBillingSettings returns the billing configuration.
// GET /api/admin/settings/billing
func (h *SettingsHandler) GetBillingSettings(c *fiber.Ctx) error {
	var settings models.BillingSettings
	err := h.db.First(&settings, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.BillingSettings{ID: 1}
		if err := h.db.Create(&settings).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to load settings"})
		}
	} else if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load settings"})
	}

	return c.JSON(fiber.Map{"settings": settings})
}

// UpdateBillingSettings replaces the billing configuration.
// PUT /api/admin/settings/billing
func (h *SettingsHandler) UpdateBillingSettings(c *fiber.Ctx) error {
	var req models.BillingSettings
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	req.ID = 1
	req.UpdatedAt = time.Now()
	if err := h.db.Save(&req).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save settings"})
	}

	return c.JSON(fiber.Map{"success": true, "settings": req})
}
