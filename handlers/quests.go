// handlers/quests.go - team-facing quest list, detail and submission
package handlers

import (
	"errors"

	"coringas/middleware"
	"coringas/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuestHandler struct {
	quests *services.QuestService
	teams  *services.TeamService
	db     *gorm.DB
}

func NewQuestHandler(db *gorm.DB, quests *services.QuestService, teams *services.TeamService) *QuestHandler {
	return &QuestHandler{quests: quests, teams: teams, db: db}
}

// ListGameQuests returns the quests a team member may see for a game.
// GET /api/games/:id/quests
func (h *QuestHandler) ListGameQuests(c *fiber.Ctx) error {
	gameID, err := c.ParamsInt("id")
	if err != nil || gameID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid game id"})
	}

	quests, err := h.quests.ListVisible(uint(gameID))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch quests",
		})
	}

	return c.JSON(fiber.Map{"success": true, "quests": quests})
}

// GetQuest returns one quest. Non-admins only see visible active
// quests; admins bypass the visibility flag.
// GET /api/quests/:id
func (h *QuestHandler) GetQuest(c *fiber.Ctx) error {
	questID, err := c.ParamsInt("id")
	if err != nil || questID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid quest id"})
	}

	quest, err := h.quests.GetQuest(uint(questID), middleware.IsAdmin(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) ||
			errors.Is(err, services.ErrQuestHidden) ||
			errors.Is(err, services.ErrQuestNotOpen) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Quest not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch quest"})
	}

	return c.JSON(fiber.Map{"success": true, "quest": quest})
}

// SubmitAnswer records the caller's team answer for a quest.
// POST /api/quests/:id/submit
func (h *QuestHandler) SubmitAnswer(c *fiber.Ctx) error {
	questID, err := c.ParamsInt("id")
	if err != nil || questID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid quest id"})
	}

	memberID, err := middleware.GetMemberID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Not authenticated"})
	}

	var req struct {
		Answer string `json:"answer"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	// The quest must pass the same gate as the listing.
	quest, err := h.quests.GetQuest(uint(questID), false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) ||
			errors.Is(err, services.ErrQuestHidden) ||
			errors.Is(err, services.ErrQuestNotOpen) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Quest not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch quest"})
	}

	team, err := h.teams.GetMemberTeam(quest.GameID, memberID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to resolve team"})
	}
	if team == nil {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"error":   "You are not part of an active team in this game",
		})
	}

	confirmed, err := h.quests.SubmitAnswer(team.ID, quest.ID, req.Answer)
	if err != nil {
		if errors.Is(err, services.ErrEmptyAnswer) || errors.Is(err, services.ErrMissingIDs) {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	if !confirmed {
		// Soft failure: no matching progress record was updated.
		return c.Status(202).JSON(fiber.Map{
			"success":   true,
			"confirmed": false,
			"warning":   "Submission could not be confirmed. Please refresh and try again.",
		})
	}

	return c.JSON(fiber.Map{"success": true, "confirmed": true})
}
