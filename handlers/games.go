// handlers/games.go - public game listing
package handlers

import (
	"strconv"

	"coringas/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type GameHandler struct {
	db *gorm.DB
}

func NewGameHandler(db *gorm.DB) *GameHandler {
	return &GameHandler{db: db}
}

// ListGames returns active games.
// GET /api/games
func (h *GameHandler) ListGames(c *fiber.Ctx) error {
	var games []models.Game
	if err := h.db.Where("status = ?", models.GameActive).
		Order("start_date ASC, id ASC").
		Find(&games).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch games",
		})
	}

	return c.JSON(fiber.Map{"success": true, "games": games})
}

// GetGame returns one game by id or slug.
// GET /api/games/:id
func (h *GameHandler) GetGame(c *fiber.Ctx) error {
	param := c.Params("id")

	var game models.Game
	var err error
	if id, convErr := strconv.Atoi(param); convErr == nil {
		err = h.db.First(&game, id).Error
	} else {
		err = h.db.Where("slug = ?", param).First(&game).Error
	}
	if err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "Game not found",
		})
	}

	return c.JSON(fiber.Map{"success": true, "game": game})
}
