// handlers/admin/teams.go - team approval
package admin

import (
	"coringas/models"
	"coringas/services"

	"github.com/gofiber/fiber/v2"
)

type TeamHandler struct {
	teams *services.TeamService
}

func NewTeamHandler(teams *services.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

// GetGameTeams lists a game's teams, optionally by status.
// GET /api/admin/games/:id/teams?status=pendente
func (h *TeamHandler) GetGameTeams(c *fiber.Ctx) error {
	gameID, err := c.ParamsInt("id")
	if err != nil || gameID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid game id"})
	}

	status := models.TeamStatus(c.Query("status", ""))
	teams, err := h.teams.ListTeamsByGame(uint(gameID), status)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch teams"})
	}

	return c.JSON(fiber.Map{"teams": teams})
}

// ActivateTeam approves a pending team.
// POST /api/admin/teams/:id/activate
func (h *TeamHandler) ActivateTeam(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid team id"})
	}

	team, err := h.teams.ActivateTeam(uint(id))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "team": team})
}

// RejectTeam refuses a team formation request.
// POST /api/admin/teams/:id/reject
func (h *TeamHandler) RejectTeam(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid team id"})
	}

	if err := h.teams.RejectTeam(uint(id)); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true})
}
