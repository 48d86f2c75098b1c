// handlers/teams.go - team formation and membership
package handlers

import (
	"coringas/middleware"
	"coringas/services"

	"github.com/gofiber/fiber/v2"
)

type TeamHandler struct {
	teams *services.TeamService
}

func NewTeamHandler(teams *services.TeamService) *TeamHandler {
	return &TeamHandler{teams: teams}
}

// CreateTeam opens a team formation request for a game.
// POST /api/teams
func (h *TeamHandler) CreateTeam(c *fiber.Ctx) error {
	memberID, err := middleware.GetMemberID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Not authenticated"})
	}

	var req struct {
		GameID uint   `json:"game_id"`
		Name   string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if req.GameID == 0 || req.Name == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   "Game and team name are required",
		})
	}

	team, err := h.teams.CreateTeam(req.GameID, req.Name, memberID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "team": team})
}

// GetMyTeam returns the caller's active team for a game.
// GET /api/games/:id/my-team
func (h *TeamHandler) GetMyTeam(c *fiber.Ctx) error {
	gameID, err := c.ParamsInt("id")
	if err != nil || gameID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid game id"})
	}

	memberID, err := middleware.GetMemberID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Not authenticated"})
	}

	team, err := h.teams.GetMemberTeam(uint(gameID), memberID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to resolve team"})
	}
	if team == nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "No active team in this game"})
	}

	full, err := h.teams.GetTeamByID(team.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to load team"})
	}

	return c.JSON(fiber.Map{"success": true, "team": full})
}

// JoinTeam files a join request reviewed by the team leader.
// POST /api/teams/:id/join
func (h *TeamHandler) JoinTeam(c *fiber.Ctx) error {
	teamID, err := c.ParamsInt("id")
	if err != nil || teamID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team id"})
	}

	memberID, err := middleware.GetMemberID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Not authenticated"})
	}

	membership, err := h.teams.RequestJoin(uint(teamID), memberID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "membership": membership})
}

// GetTeamMembers lists a team's memberships, including pending ones.
// GET /api/teams/:id/members
func (h *TeamHandler) GetTeamMembers(c *fiber.Ctx) error {
	teamID, err := c.ParamsInt("id")
	if err != nil || teamID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team id"})
	}

	team, err := h.teams.GetTeamByID(uint(teamID))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Team not found"})
	}

	return c.JSON(fiber.Map{"success": true, "members": team.Members})
}

// ApproveJoiner lets the leader accept a pending join request.
// POST /api/teams/:id/members/:membershipId/approve
func (h *TeamHandler) ApproveJoiner(c *fiber.Ctx) error {
	return h.memberAction(c, h.teams.ApproveJoiner)
}

// RejectJoiner lets the leader refuse a pending join request.
// POST /api/teams/:id/members/:membershipId/reject
func (h *TeamHandler) RejectJoiner(c *fiber.Ctx) error {
	return h.memberAction(c, h.teams.RejectJoiner)
}

// RemoveMember lets the leader remove an active member (never the
// leader).
// DELETE /api/teams/:id/members/:membershipId
func (h *TeamHandler) RemoveMember(c *fiber.Ctx) error {
	return h.memberAction(c, h.teams.RemoveMember)
}

func (h *TeamHandler) memberAction(c *fiber.Ctx, action func(teamID, membershipID, leaderID uint) error) error {
	teamID, err := c.ParamsInt("id")
	if err != nil || teamID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid team id"})
	}

	membershipID, err := c.ParamsInt("membershipId")
	if err != nil || membershipID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid membership id"})
	}

	leaderID, err := middleware.GetMemberID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Not authenticated"})
	}

	if err := action(uint(teamID), uint(membershipID), leaderID); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true})
}
