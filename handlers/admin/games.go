// handlers/admin/games.go - game management
package admin

import (
	"time"

	"coringas/middleware"
	"coringas/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type GameHandler struct {
	db *gorm.DB
}

func NewGameHandler(db *gorm.DB) *GameHandler {
	return &GameHandler{db: db}
}

type gameRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// GetGames returns every game regardless of status.
// GET /api/admin/games
func (h *GameHandler) GetGames(c *fiber.Ctx) error {
	var games []models.Game
	if err := h.db.Order("created_at DESC").Find(&games).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch games"})
	}
	return c.JSON(fiber.Map{"games": games})
}

// CreateGame creates a game in pendente status.
// POST /api/admin/games
func (h *GameHandler) CreateGame(c *fiber.Ctx) error {
	var req gameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Title == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Title is required"})
	}

	adminID, err := middleware.GetMemberID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Not authenticated"})
	}

	game := models.Game{
		Title:       req.Title,
		Description: req.Description,
		Slug:        slug.Make(req.Title),
		Status:      models.GamePending,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedBy:   adminID,
	}

	if err := h.db.Create(&game).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create game"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "game": game})
}

// UpdateGame edits game fields.
// PUT /api/admin/games/:id
func (h *GameHandler) UpdateGame(c *fiber.Ctx) error {
	id := c.Params("id")

	var game models.Game
	if err := h.db.First(&game, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Game not found"})
	}

	var req gameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if req.Title != "" {
		updates["title"] = req.Title
		updates["slug"] = slug.Make(req.Title)
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}
	if req.StartDate != nil {
		updates["start_date"] = req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = req.EndDate
	}

	if err := h.db.Model(&game).Updates(updates).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update game"})
	}

	h.db.First(&game, id)
	return c.JSON(fiber.Map{"success": true, "game": game})
}
