// handlers/ranking.go - game leaderboard
package handlers

import (
	"coringas/services"

	"github.com/gofiber/fiber/v2"
)

type RankingHandler struct {
	ranking *services.RankingService
}

func NewRankingHandler(ranking *services.RankingService) *RankingHandler {
	return &RankingHandler{ranking: ranking}
}

// GetRanking returns the leaderboard for a game, recomputed fresh on
// every call. Any load failure aborts the whole view; no partial
// ranking is shown.
// GET /api/games/:id/ranking
func (h *RankingHandler) GetRanking(c *fiber.Ctx) error {
	gameID, err := c.ParamsInt("id")
	if err != nil || gameID <= 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid game id"})
	}

	entries, err := h.ranking.Ranking(uint(gameID))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to compute ranking",
		})
	}

	return c.JSON(fiber.Map{"success": true, "ranking": entries})
}
